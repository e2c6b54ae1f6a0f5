package store

type Message struct {
	ID         string  `json:"id"`
	ChatID     string  `json:"chat_id"`
	SenderID   string  `json:"sender_id"`
	ReceiverID string  `json:"receiver_id"`
	Text       *string `json:"message"`
	FileURL    *string `json:"file_url"`
	FileType   *string `json:"file_type"`
	FileName   *string `json:"file_name"`
	Timestamp  int64   `json:"timestamp"` // epoch ms, 0 while the server timestamp is unresolved
}

// NewMessage is the caller-supplied part of a message; the id and the
// timestamp are assigned on append.
type NewMessage struct {
	SenderID   string
	ReceiverID string
	Text       *string
	FileURL    *string
	FileType   *string
	FileName   *string
}

// ChatMeta is the denormalized summary kept on every chat document.
type ChatMeta struct {
	ID           string   `json:"id"`
	Participants []string `json:"participants"`
	LastMessage  string   `json:"last_message"`
	LastSender   string   `json:"last_sender"`
	UpdatedAt    int64    `json:"updated_at"`
}

type User struct {
	UID             string   `json:"uid"`
	Email           string   `json:"email"`
	Name            string   `json:"name"`
	HelpingSubjects []string `json:"helping_subjects"`
	Avatar          string   `json:"avatar"`
	AvatarURL       string   `json:"avatarUrl,omitempty"`
	CreatedAt       int64    `json:"created_at,omitempty"`
}

// ProfileChanges lists the profile fields to overwrite; nil means unchanged.
type ProfileChanges struct {
	Name            *string
	HelpingSubjects []string
	AvatarURL       *string
}

func (c ProfileChanges) Empty() bool {
	return c.Name == nil && c.HelpingSubjects == nil && c.AvatarURL == nil
}

type Helper struct {
	UID             string   `json:"uid"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	AvatarURL       string   `json:"avatarUrl,omitempty"`
	HelpingSubjects []string `json:"helping_subjects"`
}

type PublicProfile struct {
	UID       string `json:"uid"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

type Course struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Disciplines []Discipline `json:"disciplines"`
}

type Discipline struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
