package service

import (
	"os"
	"testing"
	"time"

	"algolearn/internal/common/security"
	"algolearn/internal/platform/config"
)

func TestMain(m *testing.M) {
	config.AppConfig = &config.Config{
		JWTKey: []byte("test-secret"),
		JWTExp: time.Hour,
	}
	security.InitJWT()
	os.Exit(m.Run())
}
