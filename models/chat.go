package models

import "time"

const (
	ChatSenderClient  = "client"
	ChatSenderShop    = "shop"
	ChatSenderSupport = "support"
)

type ChatMessage struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"` // 1-based position in everything ever sent to the shop
	Sender    string    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

type SupportArticle struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
}
