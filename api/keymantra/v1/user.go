package keymantrav1

import "time"

type User struct {
	Id         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	CreateTime time.Time `json:"createTime"`
	UpdateTime time.Time `json:"updateTime"`
}

type SyncUserResponse struct {
	User    *User `json:"user"`
	Created bool  `json:"created"`
}
