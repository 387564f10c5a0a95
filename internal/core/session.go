package core

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/voyago/citychat-server/internal/moderation"
	"github.com/voyago/citychat-server/internal/store"
)

const (
	warnText = "Please watch your language. Continued profanity will get you muted."
	muteText = "You have been muted for repeated profanity."
)

// session is the per-connection actor. It drains the client's command channel
// in arrival order on a single goroutine, so the infraction counter and the
// joined-room set need no locking: only this goroutine touches them.
type session struct {
	hub    *Hub
	client *Client
	log    zerolog.Logger

	infractions int
	rooms       map[string]struct{}

	done     chan struct{}
	stopOnce sync.Once
}

func newSession(hub *Hub, client *Client) *session {
	return &session{
		hub:    hub,
		client: client,
		log:    hub.log.With().Str("connection_id", client.ID).Logger(),
		rooms:  make(map[string]struct{}),
		done:   make(chan struct{}),
	}
}

func (s *session) run() {
	defer s.cleanup()

	for {
		select {
		case cmd := <-s.client.Commands:
			// A stopped session must never process a command, even one that
			// was already buffered when stop raced the select.
			select {
			case <-s.done:
				return
			default:
			}
			s.handle(cmd)
		case <-s.done:
			return
		}
	}
}

func (s *session) stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// cleanup converges the connection to fully-forgotten state: room memberships
// removed, mute record gone. The counter dies with the session itself.
func (s *session) cleanup() {
	s.hub.registry.LeaveAll(s.client)
	s.hub.mutes.Clear(s.client.ID)
	s.log.Debug().Msg("session terminated")
}

func (s *session) handle(cmd *Command) {
	switch cmd.Kind {
	case CommandJoinRoom:
		s.handleJoin(cmd)
	case CommandLeaveRoom:
		s.handleLeave(cmd)
	case CommandSendMessage:
		s.handleMessage(cmd)
	case CommandTyping:
		s.handleTyping(cmd)
	default:
		s.log.Warn().Int("kind", int(cmd.Kind)).Msg("unknown command")
	}
}

func (s *session) handleJoin(cmd *Command) {
	if cmd.Room == "" {
		s.hub.registry.Send(s.client, &Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "room is required")})
		return
	}

	s.hub.registry.Join(s.client, cmd.Room)
	s.rooms[cmd.Room] = struct{}{}

	if s.hub.store != nil {
		messages, err := s.hub.store.MessagesByRoom(context.Background(), cmd.Room, s.hub.historyLimit)
		if err != nil {
			s.log.Warn().Err(err).Str("room", cmd.Room).Msg("failed to load room history")
			return
		}
		s.hub.registry.Send(s.client, &Event{Kind: EventHistory, Room: cmd.Room, Messages: messages})
	}
}

func (s *session) handleLeave(cmd *Command) {
	s.hub.registry.Leave(s.client, cmd.Room)
	delete(s.rooms, cmd.Room)
}

func (s *session) handleMessage(cmd *Command) {
	if _, joined := s.rooms[cmd.Room]; !joined {
		s.hub.registry.Send(s.client, &Event{Kind: EventError, Error: coreError(ErrCodeNotInRoom, "join the room before posting")})
		return
	}

	now := time.Now()
	if muted, seconds := s.hub.mutes.IsMuted(s.client.ID, now); muted {
		s.hub.registry.Send(s.client, &Event{Kind: EventMutedCountdown, Seconds: seconds})
		return
	}

	decision := s.hub.policy.Evaluate(s.infractions, cmd.Text, s.hub.filter)
	s.infractions = decision.NewCount

	msg := store.Message{
		RoomID:       cmd.Room,
		SenderName:   cmd.SenderName,
		SenderAvatar: cmd.SenderAvatar,
		Content:      decision.CleanText,
		Flagged:      decision.Profane(),
		CreatedAt:    now.UTC(),
	}
	if s.hub.store != nil {
		stored, err := s.hub.store.SaveMessage(context.Background(), msg)
		if err != nil {
			// The message is dropped without feedback to the sender.
			s.log.Error().Err(err).Str("room", cmd.Room).Msg("persist failed, message dropped")
			return
		}
		msg = *stored
	}

	s.hub.registry.Broadcast(cmd.Room, &Event{Kind: EventRoomMessage, Room: cmd.Room, Message: &msg}, nil)

	switch decision.Action {
	case moderation.ActionWarn:
		s.hub.registry.Send(s.client, &Event{Kind: EventWarning, Text: warnText})
	case moderation.ActionMute:
		s.hub.registry.Send(s.client, &Event{Kind: EventMuted, Text: muteText})
		s.hub.registry.Send(s.client, &Event{Kind: EventMutedCountdown, Seconds: int(decision.MuteDuration / time.Second)})
		s.hub.mutes.Mute(s.client.ID, decision.MuteDuration)
		s.reportInfraction(cmd.SenderName, cmd.Text, now)
	}
}

func (s *session) handleTyping(cmd *Command) {
	if cmd.Room == "" {
		return
	}
	s.hub.registry.Broadcast(cmd.Room, &Event{Kind: EventTyping, Room: cmd.Room, User: cmd.SenderName}, s.client)
}

// reportInfraction dispatches to the external sink without blocking the
// session. A sink failure never rolls back the message or the mute.
func (s *session) reportInfraction(senderName, originalText string, at time.Time) {
	if s.hub.notifier == nil {
		return
	}
	go func() {
		if err := s.hub.notifier.NotifyInfraction(context.Background(), senderName, originalText, at); err != nil {
			s.log.Warn().Err(err).Msg("infraction notification failed")
		}
	}()
}
