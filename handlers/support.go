package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"barbershop/models"
	"barbershop/services/support"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// SupportHandler serves the help center and the shop's support chat.
type SupportHandler struct {
	Chat         support.ChatService
	PollInterval time.Duration

	upgrader websocket.Upgrader
}

func NewSupportHandler(chat support.ChatService, pollInterval time.Duration) *SupportHandler {
	return &SupportHandler{
		Chat:         chat,
		PollInterval: pollInterval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *SupportHandler) Articles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"articles": support.Articles(c.Query("category"))})
}

// Messages returns the transcript, or only what came after ?since=n.
func (h *SupportHandler) Messages(c *gin.Context) {
	shopID := c.Param("shopID")
	var (
		msgs []models.ChatMessage
		err  error
	)
	if raw := c.Query("since"); raw != "" {
		n, convErr := strconv.ParseInt(raw, 10, 64)
		if convErr != nil || n < 0 {
			badRequest(c, errors.New("since must be a non-negative integer"))
			return
		}
		msgs, err = h.Chat.Since(c.Request.Context(), shopID, n)
	} else {
		msgs, err = h.Chat.Messages(c.Request.Context(), shopID)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	if msgs == nil {
		msgs = []models.ChatMessage{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

type sendMessageInput struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Send is the public chat endpoint. Visitors always post as the client.
func (h *SupportHandler) Send(c *gin.Context) {
	var input sendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	msg, err := h.Chat.SendAsClient(c.Request.Context(), c.Param("shopID"), input.Sender, input.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// OwnerSend posts as the shop of the authenticated owner.
func (h *SupportHandler) OwnerSend(c *gin.Context) {
	var input sendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	msg, err := h.Chat.Send(c.Request.Context(), ownerShopID(c), models.ChatSenderShop, input.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// Stream upgrades to a websocket that pushes the transcript whenever it
// changes. Frames sent by the client are appended as client messages.
func (h *SupportHandler) Stream(c *gin.Context) {
	shopID := c.Param("shopID")
	logger := getLogger(c).With(zap.String("shopID", shopID))

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("chat ws upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// The stream lives until the client goes away, not as long as the
	// request context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var writeMu sync.Mutex
	write := func(fn func() error) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		return fn()
	}

	go h.readLoop(ctx, cancel, conn, shopID, logger)
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := write(func() error {
					return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
				}); err != nil {
					cancel()
					return
				}
			}
		}
	}()

	err = h.Chat.Poll(ctx, shopID, h.PollInterval, func(msgs []models.ChatMessage) error {
		return write(func() error {
			return conn.WriteJSON(gin.H{"messages": msgs})
		})
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Debug("chat stream closed", zap.Error(err))
	}
}

func (h *SupportHandler) readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, shopID string, logger *zap.Logger) {
	defer cancel()

	conn.SetReadLimit(16 << 10)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("chat ws read failed", zap.Error(err))
			}
			return
		}
		var input sendMessageInput
		if err := json.Unmarshal(data, &input); err != nil {
			logger.Info("chat ws frame ignored", zap.Error(err))
			continue
		}
		if _, err := h.Chat.SendAsClient(ctx, shopID, input.Sender, input.Text); err != nil {
			logger.Info("chat ws message rejected", zap.Error(err))
		}
	}
}
