package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/fadilmartias/freelance-ledger/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

const keepAliveInterval = 15 * time.Second

type EventHandler struct {
	cache *usecase.TaskCache
}

func NewEventHandler(cache *usecase.TaskCache) *EventHandler {
	return &EventHandler{cache: cache}
}

func (h *EventHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/events", h.Stream)
}

// Stream pushes cache change events as server-sent events until the client
// goes away.
func (h *EventHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	events, cancel := h.cache.Subscribe()
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(keepAliveInterval)
		defer ticker.Stop()

		fmt.Fprint(w, ": connected\n\n")
		if err := w.Flush(); err != nil {
			return
		}
		for {
			select {
			case e, ok := <-events:
				if !ok {
					return
				}
				payload, err := json.Marshal(e)
				if err != nil {
					log.Printf("encode event %s: %v", e.Type, err)
					continue
				}
				fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, payload)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			if err := w.Flush(); err != nil {
				return
			}
		}
	}))
	return nil
}
