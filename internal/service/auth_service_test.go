package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lumistore/storefront/internal/config"
	"github.com/lumistore/storefront/internal/constants"
	"github.com/lumistore/storefront/internal/models"
	"github.com/lumistore/storefront/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthServiceTest(t *testing.T) (*gorm.DB, *AuthService) {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Cart{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "test-secret"
	cfg.JWT.ExpireHours = 24
	cfg.JWT.RememberMeExpireHours = 168
	cfg.Security.PasswordPolicy = config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireLower:  true,
		RequireNumber: true,
	}

	svc := NewAuthService(cfg, repository.NewUserRepository(db), repository.NewCartRepository(db))
	return db, svc
}

func TestRegisterCreatesUserAndCart(t *testing.T) {
	db, svc := setupAuthServiceTest(t)

	user, token, expiresAt, err := svc.Register(RegisterInput{
		Email:     " Buyer@Example.com ",
		Password:  "Sup3rSecret",
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.Email != "buyer@example.com" {
		t.Fatalf("expected normalized email, got %s", user.Email)
	}
	if user.Role != constants.UserRoleCustomer {
		t.Fatalf("expected customer role, got %s", user.Role)
	}
	if user.PasswordHash == "Sup3rSecret" || user.PasswordHash == "" {
		t.Fatalf("expected hashed password")
	}
	if token == "" || expiresAt.Before(time.Now()) {
		t.Fatalf("expected valid token with future expiry")
	}

	var cart models.Cart
	if err := db.Where("user_id = ?", user.ID).First(&cart).Error; err != nil {
		t.Fatalf("expected cart created with user: %v", err)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	_, svc := setupAuthServiceTest(t)

	input := RegisterInput{Email: "buyer@example.com", Password: "Sup3rSecret"}
	if _, _, _, err := svc.Register(input); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	// 大小写不同也视为同一邮箱
	input.Email = "BUYER@example.com"
	_, _, _, err := svc.Register(input)
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected email exists error, got: %v", err)
	}
}

func TestRegisterRejectsInvalidEmail(t *testing.T) {
	_, svc := setupAuthServiceTest(t)

	for _, email := range []string{"", "not-an-email", "a@"} {
		_, _, _, err := svc.Register(RegisterInput{Email: email, Password: "Sup3rSecret"})
		if !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("expected invalid email for %q, got: %v", email, err)
		}
	}
}

func TestRegisterEnforcesPasswordPolicy(t *testing.T) {
	_, svc := setupAuthServiceTest(t)

	cases := []string{
		"short1A",     // 长度不足
		"alllowercase1", // 缺大写
		"ALLUPPERCASE1", // 缺小写
		"NoNumbersHere", // 缺数字
	}
	for _, password := range cases {
		_, _, _, err := svc.Register(RegisterInput{Email: "buyer@example.com", Password: password})
		if !errors.Is(err, ErrWeakPassword) {
			t.Fatalf("expected weak password for %q, got: %v", password, err)
		}
	}
}

func TestLoginVerifiesCredentials(t *testing.T) {
	_, svc := setupAuthServiceTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Email: "buyer@example.com", Password: "Sup3rSecret"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	user, token, _, err := svc.Login("buyer@example.com", "Sup3rSecret", false)
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.LastLoginAt == nil {
		t.Fatalf("expected last login to be stamped")
	}

	claims, err := svc.ParseUserJWT(token)
	if err != nil {
		t.Fatalf("ParseUserJWT error: %v", err)
	}
	if claims.UserID != user.ID || claims.Email != user.Email || claims.Role != user.Role {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	_, _, _, err = svc.Login("buyer@example.com", "WrongPassword1", false)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got: %v", err)
	}
	_, _, _, err = svc.Login("unknown@example.com", "Sup3rSecret", false)
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for unknown email, got: %v", err)
	}
}

func TestLoginRejectsDisabledUser(t *testing.T) {
	db, svc := setupAuthServiceTest(t)

	user, _, _, err := svc.Register(RegisterInput{Email: "buyer@example.com", Password: "Sup3rSecret"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", constants.UserStatusDisabled).Error; err != nil {
		t.Fatalf("disable user failed: %v", err)
	}

	_, _, _, err = svc.Login("buyer@example.com", "Sup3rSecret", false)
	if !errors.Is(err, ErrUserDisabled) {
		t.Fatalf("expected user disabled error, got: %v", err)
	}
}

func TestLoginRememberMeExtendsExpiry(t *testing.T) {
	_, svc := setupAuthServiceTest(t)

	if _, _, _, err := svc.Register(RegisterInput{Email: "buyer@example.com", Password: "Sup3rSecret"}); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, _, normalExpiry, err := svc.Login("buyer@example.com", "Sup3rSecret", false)
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	_, _, rememberExpiry, err := svc.Login("buyer@example.com", "Sup3rSecret", true)
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if !rememberExpiry.After(normalExpiry.Add(24 * time.Hour)) {
		t.Fatalf("expected remember-me expiry to extend well beyond normal: %v vs %v", rememberExpiry, normalExpiry)
	}
}

func TestParseUserJWTRejectsTamperedToken(t *testing.T) {
	_, svc := setupAuthServiceTest(t)

	_, token, _, err := svc.Register(RegisterInput{Email: "buyer@example.com", Password: "Sup3rSecret"})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if _, err := svc.ParseUserJWT(token + "x"); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
	if _, err := svc.ParseUserJWT("not-a-token"); err == nil {
		t.Fatalf("expected malformed token to be rejected")
	}
}
