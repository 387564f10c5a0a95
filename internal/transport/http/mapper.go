package http

import (
	"encoding/json"

	"github.com/voyago/citychat-server/internal/core"
	"github.com/voyago/citychat-server/internal/proto"
)

func inboundToCommand(inbound proto.Inbound) (*core.Command, *proto.Error) {
	switch inbound.Type {
	case proto.InboundTypeJoinRoom:
		var join proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &join); err != nil {
			return nil, malformedPayload()
		}
		if join.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}
		}
		return &core.Command{
			Kind: core.CommandJoinRoom,
			Room: join.Room,
		}, nil
	case proto.InboundTypeLeaveRoom:
		var leave proto.JoinRoomData
		if err := json.Unmarshal(inbound.Data, &leave); err != nil {
			return nil, malformedPayload()
		}
		if leave.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}
		}
		return &core.Command{
			Kind: core.CommandLeaveRoom,
			Room: leave.Room,
		}, nil
	case proto.InboundTypeChat:
		var msg proto.ChatMessageData
		if err := json.Unmarshal(inbound.Data, &msg); err != nil {
			return nil, malformedPayload()
		}
		if msg.Room == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "room is required"}
		}
		if msg.Text == "" {
			return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "text is required"}
		}
		return &core.Command{
			Kind:         core.CommandSendMessage,
			Room:         msg.Room,
			Text:         msg.Text,
			SenderName:   msg.UserName,
			SenderAvatar: msg.AvatarURL,
		}, nil
	case proto.InboundTypeTyping:
		var typing proto.TypingData
		if err := json.Unmarshal(inbound.Data, &typing); err != nil {
			return nil, malformedPayload()
		}
		if typing.RoomID == "" {
			// Fire-and-forget indicator, nothing to report.
			return nil, nil
		}
		return &core.Command{
			Kind:       core.CommandTyping,
			Room:       typing.RoomID,
			SenderName: typing.Username,
		}, nil
	default:
		return nil, &proto.Error{Code: core.ErrCodeBadRequest, Msg: "unknown event type"}
	}
}

func malformedPayload() *proto.Error {
	return &proto.Error{Code: core.ErrCodeBadRequest, Msg: "malformed payload"}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventRoomMessage:
		return proto.Outbound{
			Type: proto.OutboundTypeChat,
			Data: proto.EventChatMessage{
				SenderName:   event.Message.SenderName,
				SenderAvatar: event.Message.SenderAvatar,
				Content:      event.Message.Content,
				Timestamp:    event.Message.CreatedAt.UnixMilli(),
			},
		}
	case core.EventTyping:
		return proto.Outbound{
			Type: proto.OutboundTypeTyping,
			Data: proto.EventTyping{Username: event.User},
		}
	case core.EventWarning:
		return proto.Outbound{
			Type: proto.OutboundTypeWarning,
			Data: proto.EventNotice{Message: event.Text},
		}
	case core.EventMuted:
		return proto.Outbound{
			Type: proto.OutboundTypeMuted,
			Data: proto.EventNotice{Message: event.Text},
		}
	case core.EventMutedCountdown:
		return proto.Outbound{
			Type: proto.OutboundTypeMutedCountdown,
			Data: proto.EventMutedCountdown{Seconds: event.Seconds},
		}
	case core.EventHistory:
		messages := make([]proto.EventChatMessage, 0, len(event.Messages))
		for _, m := range event.Messages {
			messages = append(messages, proto.EventChatMessage{
				SenderName:   m.SenderName,
				SenderAvatar: m.SenderAvatar,
				Content:      m.Content,
				Timestamp:    m.CreatedAt.UnixMilli(),
			})
		}
		return proto.Outbound{
			Type: proto.OutboundTypeHistory,
			Data: proto.EventHistory{Room: event.Room, Messages: messages},
		}
	case core.EventError:
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: event.Error.Code, Msg: event.Error.Message},
		}
	default:
		return proto.Outbound{
			Type:  proto.OutboundTypeError,
			Error: &proto.Error{Code: core.ErrCodeBadRequest, Msg: "unknown event"},
		}
	}
}
