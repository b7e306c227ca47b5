package model

// InboundMessage is the narrow view of a platform message event that the
// core consumes; adapter-specific types never cross this boundary
type InboundMessage struct {
	CommunityID       CommunityID
	ChannelName       string
	AuthorID          UserID
	AuthorDisplayName string
	Text              string
}
