package model

import "time"

type AppSetting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type CarouselSlide struct {
	SlideID  int64   `json:"slideid"`
	Title    string  `json:"title"`
	ImageURL string  `json:"imageurl"`
	LinkURL  *string `json:"linkurl,omitempty"`
	Position int     `json:"position"`
}

type TopProduct struct {
	ProductID int64 `json:"productid"`
	Position  int   `json:"position"`
}

type Review struct {
	ReviewID  int64         `json:"reviewid"`
	ProductID int64         `json:"productid"`
	UserID    int64         `json:"userid"`
	Username  string        `json:"username"`
	Rating    int           `json:"rating"`
	Body      string        `json:"body"`
	Replies   []ReviewReply `json:"replies,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

type ReviewReply struct {
	ReplyID   int64     `json:"replyid"`
	ReviewID  int64     `json:"reviewid"`
	AdminID   int64     `json:"adminid"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
