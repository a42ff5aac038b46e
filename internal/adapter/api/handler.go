package api

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log"
	"net"
	"net/url"

	"hello-ai-ui/internal/domain/entity"
	"hello-ai-ui/internal/usecase"

	"github.com/gofiber/fiber/v2"
)

const textPlainUTF8 = "text/plain; charset=utf-8"

type RelayHandler struct {
	relay *usecase.Relay
}

func NewRelayHandler(relay *usecase.Relay) *RelayHandler {
	return &RelayHandler{relay: relay}
}

// HandleChat relays the prompt as-is. Transport failures are left to the
// app's error handler.
func (h *RelayHandler) HandleChat(c *fiber.Ctx) error {
	res, err := h.relay.Chat(c.UserContext(), c.Query("prompt"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(res.Status).Send(res.Body)
}

func (h *RelayHandler) HandleQA(c *fiber.Ctx) error {
	res, err := h.relay.QA(c.UserContext(), c.Query("query"))
	if err != nil {
		if errors.Is(err, entity.ErrMissingQuery) {
			return c.Status(fiber.StatusBadRequest).JSON(entity.ErrorBody{Error: err.Error()})
		}
		log.Printf("[RELAY] qa failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(entity.ErrorBody{
			Error:  entity.ErrBackendUnreachable.Error(),
			Detail: failureDetail(err),
		})
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(res.Status).Send(res.Body)
}

// HandleChatStream pipes the backend stream through unchanged, flushing after
// every read so chunk boundaries survive where the transport allows.
func (h *RelayHandler) HandleChatStream(c *fiber.Ctx) error {
	// The body is written after this handler returns, so the upstream call
	// cannot be tied to the request context. A client that leaves is noticed
	// on the next failed write; server shutdown cancels at once.
	ctx, cancel := context.WithCancel(context.Background())
	res, err := h.relay.ChatStream(ctx, c.Query("prompt"))
	if err != nil {
		cancel()
		return err
	}

	shutdown := c.Context().Done()
	c.Status(res.Status)
	c.Set(fiber.HeaderContentType, textPlainUTF8)
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		defer res.Body.Close()
		go func() {
			select {
			case <-shutdown:
				cancel()
			case <-ctx.Done():
			}
		}()

		buf := make([]byte, 4096)
		for {
			n, rerr := res.Body.Read(buf)
			if n > 0 {
				if _, err := w.Write(buf[:n]); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					log.Printf("[RELAY] client went away mid-stream: %v", err)
					return
				}
			}
			if rerr != nil {
				if rerr != io.EOF {
					log.Printf("[RELAY] upstream stream ended with error: %v", rerr)
				}
				return
			}
		}
	})
	return nil
}

func (h *RelayHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.relay.Usage(c.UserContext())
	if err != nil {
		if errors.Is(err, entity.ErrStatsDisabled) {
			return c.Status(fiber.StatusNotFound).JSON(entity.ErrorBody{Error: err.Error()})
		}
		return err
	}
	return c.JSON(stats)
}

// failureDetail keeps the transport's reason and drops anything that names
// the configured backend: the outbound URL, dialed address or looked-up host.
func failureDetail(err error) string {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return "lookup: " + dnsErr.Err
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Err != nil {
		return opErr.Op + " " + opErr.Net + ": " + opErr.Err.Error()
	}
	var ue *url.Error
	if errors.As(err, &ue) {
		return ue.Err.Error()
	}
	var up *entity.UpstreamError
	if errors.As(err, &up) {
		return up.Err.Error()
	}
	return err.Error()
}
