package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophforum/internal/flagx"
)

var serverFlags = []string{"-a", "-o", "-d", "-s", "-t", "-r", "-u", "-p", "-b", "-g", "-e", "-l", "-n"}

// parseFlags overlays command-line flags on config:
//
//	-a  gRPC bind address          -o  ops HTTP bind address
//	-d  PostgreSQL DSN             -s  JWT HMAC secret
//	-t  access token lifetime      -r  refresh token lifetime
//	-u  S3 user                    -p  S3 password
//	-b  S3 bucket                  -g  S3 region
//	-e  S3 endpoint                -l  log level (debug, info, warn, error)
//	-n  forum name
//
// Unknown flags (and -c/-config) are filtered out first.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("gophforum-server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC bind address")
	fs.StringVar(&config.EndpointAddrOps, "o", config.EndpointAddrOps, "ops HTTP bind address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "JWT secret key")
	fs.DurationVar(&config.AccessTokenValidityDuration, "t", config.AccessTokenValidityDuration, "access token lifetime")
	fs.DurationVar(&config.RefreshTokenValidityDuration, "r", config.RefreshTokenValidityDuration, "refresh token lifetime")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.Forum.Name, "n", config.Forum.Name, "forum name")
	logLevel := fs.String("l", config.LogLevel.String(), "log level")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	if err := config.LogLevel.UnmarshalText([]byte(*logLevel)); err != nil {
		return fmt.Errorf("parse flags: -l: %w", err)
	}
	return nil
}
