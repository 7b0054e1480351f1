package model

import "time"

// AnonymousAuthor is recorded when a comment arrives without an
// identifiable session email.
const AnonymousAuthor = "anonymous"

// Comment is a viewer remark attached to one video.  Comments are
// append-only: they are never edited or deleted, and Likes is carried in
// the record but no operation increments it.
type Comment struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Likes     uint64    `json:"likes"`
}
