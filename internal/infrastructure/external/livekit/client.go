package livekit

import (
	"context"
	"fmt"
	"strings"
	"time"

	livekit "github.com/livekit/protocol/livekit"
	lksdk "github.com/livekit/server-sdk-go/v2"
)

// ParticipantInfo holds participant information
type ParticipantInfo struct {
	SID      string
	Identity string
	Name     string
	JoinedAt time.Time
	External bool
}

// Roster is the participant list of a LiveKit room at lookup time
type Roster struct {
	Room         string
	Participants []ParticipantInfo
}

// Count returns the number of participants in the room
func (r *Roster) Count() int {
	return len(r.Participants)
}

// HasExternal reports whether anyone joined from outside the internal domains
func (r *Roster) HasExternal() bool {
	for _, p := range r.Participants {
		if p.External {
			return true
		}
	}
	return false
}

type participantLister interface {
	ListParticipants(ctx context.Context, req *livekit.ListParticipantsRequest) (*livekit.ListParticipantsResponse, error)
}

// RosterClient looks up room participants to enrich transcript metadata
type RosterClient struct {
	rooms           participantLister
	internalDomains []string
}

// NewRosterClient creates a roster client. Participants whose identity is an
// email outside internalDomains are flagged as external.
func NewRosterClient(url, apiKey, apiSecret string, internalDomains []string) *RosterClient {
	return &RosterClient{
		rooms:           lksdk.NewRoomServiceClient(url, apiKey, apiSecret),
		internalDomains: normalizeDomains(internalDomains),
	}
}

// Roster lists the participants of a room
func (c *RosterClient) Roster(ctx context.Context, roomName string) (*Roster, error) {
	resp, err := c.rooms.ListParticipants(ctx, &livekit.ListParticipantsRequest{
		Room: roomName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	roster := &Roster{
		Room:         roomName,
		Participants: make([]ParticipantInfo, 0, len(resp.Participants)),
	}
	for _, p := range resp.Participants {
		roster.Participants = append(roster.Participants, ParticipantInfo{
			SID:      p.Sid,
			Identity: p.Identity,
			Name:     p.Name,
			JoinedAt: time.Unix(p.JoinedAt, 0),
			External: c.isExternal(p.Identity),
		})
	}
	return roster, nil
}

// isExternal is false for identities that are not emails and when no internal
// domains are configured.
func (c *RosterClient) isExternal(identity string) bool {
	at := strings.LastIndex(identity, "@")
	if at == -1 || len(c.internalDomains) == 0 {
		return false
	}
	domain := strings.ToLower(identity[at+1:])
	for _, d := range c.internalDomains {
		if domain == d || strings.HasSuffix(domain, "."+d) {
			return false
		}
	}
	return true
}

func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "@"))
		if d != "" {
			out = append(out, d)
		}
	}
	return out
}
