package entity

// RouteUsage holds the relay counters for one inbound route.
type RouteUsage struct {
	Requests int64         `json:"requests"`
	Bytes    int64         `json:"bytes"`
	Statuses map[int]int64 `json:"statuses"`
}
