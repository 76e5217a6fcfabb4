package httpapi

import (
	"context"
	"net/http"

	"bakery-be/internal/chat"
	"bakery-be/internal/logger"
	"bakery-be/internal/realtime"
	"bakery-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type chatRequest struct {
	Body string `json:"body" binding:"required"`
}

func (h *handler) chatHistory(c *gin.Context) {
	msgs, err := h.Chat.History(c.Request.Context(), "")
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *handler) sendChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrBadRequest)
		return
	}

	msg, err := h.Chat.Send(c.Request.Context(), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *handler) conversations(c *gin.Context) {
	convs, err := h.Chat.Conversations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, convs)
}

func (h *handler) conversationHistory(c *gin.Context) {
	msgs, err := h.Chat.History(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

func (h *handler) replyChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ErrBadRequest)
		return
	}

	msg, err := h.Chat.Reply(c.Request.Context(), c.Param("id"), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// chatStream pushes one conversation over a websocket. Customers always follow their own
// conversation; admins pick one with ?conversation=. Each change notification triggers
// a reload that is merged into the session's thread, so only unseen messages go out.
func (h *handler) chatStream(c *gin.Context) {
	ctx := c.Request.Context()

	conversation := c.Query("conversation")
	if !utils.IsAdmin(ctx) {
		conversation, _ = utils.GetUserIDFromContext(ctx)
	}
	if conversation == "" {
		respondError(c, chat.ErrMissingConversation)
		return
	}

	sess, err := realtime.Upgrade(realtime.NewUpgrader(h.AllowedOrigin), c.Writer, c.Request)
	if err != nil {
		logger.FromCtx(ctx).Warn("chat websocket upgrade failed", zap.Error(err))
		return
	}

	thread := chat.NewThread()
	changed := make(chan struct{}, 1)
	changed <- struct{}{}

	unsubscribe := h.Hub.Subscribe(realtime.ResourceChatMessages, func(ev realtime.Event) {
		if ev.Key != "" && ev.Key != conversation {
			return
		}
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	go h.followThread(ctx, sess, conversation, thread, changed)
	sess.Run()
}

func (h *handler) followThread(ctx context.Context, sess *realtime.Session, conversation string, thread *chat.Thread, changed <-chan struct{}) {
	for {
		select {
		case <-sess.Done():
			return
		case <-changed:
			added, err := h.Chat.Sync(ctx, conversation, thread)
			if err != nil {
				logger.FromCtx(ctx).Warn("chat sync failed", zap.Error(err))
				continue
			}
			for _, m := range added {
				sess.Send(m)
			}
		}
	}
}
