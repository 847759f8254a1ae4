package user

import "time"

// User 用户模型(映射到auth_users表,只读)
// 用户的增删改由外部认证服务负责，内容服务只消费 id 和 role
type User struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	Username  string    `gorm:"column:username" json:"username"`
	Email     string    `gorm:"column:email" json:"email"`
	Avatar    string    `gorm:"column:avatar" json:"avatar,omitempty"`
	Role      string    `gorm:"column:role" json:"role"` // admin, user
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (User) TableName() string {
	return "auth_users"
}
