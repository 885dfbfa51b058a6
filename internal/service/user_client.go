package service

import (
	"context"
	log "log/slog"
	"storyapp/internal/api/config"
	"time"

	"github.com/go-resty/resty/v2"
)

// UserClient 调用用户服务补全作者信息，失败只降级不报错
type UserClient interface {
	GetUserEmail(ctx context.Context, username string) string
}

type userClientImpl struct {
	client *resty.Client
}

func NewUserClient() UserClient {
	cfg := config.Cfg.UserService
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout)
	return &userClientImpl{client: client}
}

type userProfileResp struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// GetUserEmail 查询用户邮箱。用户服务不可用或用户不存在时返回空串。
func (s *userClientImpl) GetUserEmail(ctx context.Context, username string) string {
	if username == "" || s.client.BaseURL == "" {
		return ""
	}
	var profile userProfileResp
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&profile).
		SetPathParam("username", username).
		Get("/api/users/{username}")
	if err != nil {
		log.Warn("user service unreachable", "username", username, "err", err)
		return ""
	}
	if resp.IsError() {
		return ""
	}
	return profile.Email
}
