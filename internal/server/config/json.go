package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrijs2005/gophforum/internal/flagx"
	"github.com/dmitrijs2005/gophforum/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Durations accept
// either "15m" strings or integer nanoseconds. Absent fields keep the
// current value.
type JsonConfig struct {
	EndpointAddrGRPC             *string         `json:"endpoint_addr_grpc"`
	EndpointAddrOps              *string         `json:"endpoint_addr_ops"`
	DatabaseDSN                  *string         `json:"database_dsn"`
	SecretKey                    *string         `json:"secret_key"`
	AccessTokenValidityDuration  *timex.Duration `json:"access_token_validity_duration"`
	RefreshTokenValidityDuration *timex.Duration `json:"refresh_token_validity_duration"`
	S3RootUser                   *string         `json:"s3_root_user"`
	S3RootPassword               *string         `json:"s3_root_password"`
	S3Bucket                     *string         `json:"s3_bucket"`
	S3Region                     *string         `json:"s3_region"`
	S3BaseEndpoint               *string         `json:"s3_base_endpoint"`
	BannerURLValidity            *timex.Duration `json:"banner_url_validity"`
	LogLevel                     *string         `json:"log_level"`
	Forum                        *JsonForum      `json:"forum"`
}

type JsonForum struct {
	Name                 *string `json:"name"`
	BulkActionLimit      *int    `json:"bulk_action_limit"`
	PasswordMinLength    *int    `json:"password_min_length"`
	PasswordMaxLength    *int    `json:"password_max_length"`
	PostMinLength        *int    `json:"post_min_length"`
	ThreadTitleMinLength *int    `json:"thread_title_min_length"`
	ThreadTitleMaxLength *int    `json:"thread_title_max_length"`
	UsernameMinLength    *int    `json:"username_min_length"`
	UsernameMaxLength    *int    `json:"username_max_length"`
	ThreadsPerPage       *int    `json:"threads_per_page"`
	PostsPerPage         *int    `json:"posts_per_page"`
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	set(&config.EndpointAddrOps, c.EndpointAddrOps)
	set(&config.DatabaseDSN, c.DatabaseDSN)
	set(&config.SecretKey, c.SecretKey)
	set(&config.S3RootUser, c.S3RootUser)
	set(&config.S3RootPassword, c.S3RootPassword)
	set(&config.S3Bucket, c.S3Bucket)
	set(&config.S3Region, c.S3Region)
	set(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.AccessTokenValidityDuration != nil {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshTokenValidityDuration != nil {
		config.RefreshTokenValidityDuration = c.RefreshTokenValidityDuration.Duration
	}
	if c.BannerURLValidity != nil {
		config.BannerURLValidity = c.BannerURLValidity.Duration
	}
	if c.LogLevel != nil {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(*c.LogLevel)); err != nil {
			return fmt.Errorf("parse config %s: log_level: %w", path, err)
		}
		config.LogLevel = lvl
	}

	if f := c.Forum; f != nil {
		set(&config.Forum.Name, f.Name)
		set(&config.Forum.BulkActionLimit, f.BulkActionLimit)
		set(&config.Forum.PasswordMinLength, f.PasswordMinLength)
		set(&config.Forum.PasswordMaxLength, f.PasswordMaxLength)
		set(&config.Forum.PostMinLength, f.PostMinLength)
		set(&config.Forum.ThreadTitleMinLength, f.ThreadTitleMinLength)
		set(&config.Forum.ThreadTitleMaxLength, f.ThreadTitleMaxLength)
		set(&config.Forum.UsernameMinLength, f.UsernameMinLength)
		set(&config.Forum.UsernameMaxLength, f.UsernameMaxLength)
		set(&config.Forum.ThreadsPerPage, f.ThreadsPerPage)
		set(&config.Forum.PostsPerPage, f.PostsPerPage)
	}

	return nil
}
