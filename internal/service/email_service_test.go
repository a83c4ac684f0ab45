package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/lumistore/storefront/internal/models"

	"github.com/shopspring/decimal"
)

func TestBuildOrderStatusContent(t *testing.T) {
	tests := []struct {
		name                string
		status              string
		orderNo             string
		wantSubjectContains []string
		wantBodyContains    []string
	}{
		{
			name:                "processing",
			status:              "PROCESSING",
			orderNo:             "SF-PROCESS",
			wantSubjectContains: []string{"being processed"},
			wantBodyContains:    []string{"Order SF-PROCESS is now being processed"},
		},
		{
			name:                "shipped",
			status:              "SHIPPED",
			orderNo:             "SF-SHIP",
			wantSubjectContains: []string{"shipped"},
			wantBodyContains:    []string{"Order SF-SHIP has been shipped"},
		},
		{
			name:                "delivered",
			status:              "DELIVERED",
			orderNo:             "SF-DELIVER",
			wantSubjectContains: []string{"delivered"},
			wantBodyContains:    []string{"Order SF-DELIVER has been delivered", "Thank you"},
		},
		{
			name:                "cancelled",
			status:              "CANCELLED",
			orderNo:             "SF-CANCEL",
			wantSubjectContains: []string{"cancelled"},
			wantBodyContains:    []string{"Order SF-CANCEL has been cancelled", "returned to stock"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := OrderStatusEmailInput{
				OrderNo: tt.orderNo,
				Status:  tt.status,
				Amount:  models.NewMoneyFromDecimal(decimal.NewFromFloat(19.8)),
			}
			subject, body := buildOrderStatusContent(input)
			for _, expected := range tt.wantSubjectContains {
				if !strings.Contains(subject, expected) {
					t.Fatalf("subject missing %q: %s", expected, subject)
				}
			}
			for _, expected := range tt.wantBodyContains {
				if !strings.Contains(body, expected) {
					t.Fatalf("body missing %q: %s", expected, body)
				}
			}
		})
	}
}

func TestSendTextEmailDisabled(t *testing.T) {
	svc := NewEmailService(nil)
	if err := svc.SendOrderStatusEmail("buyer@example.com", OrderStatusEmailInput{OrderNo: "SF-X", Status: "SHIPPED"}); !errors.Is(err, ErrEmailServiceDisabled) {
		t.Fatalf("expected ErrEmailServiceDisabled, got %v", err)
	}
}

func TestIsEmailRecipientRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "smtp_550_no_such_recipient",
			err:  errors.New("550 No such recipient here"),
			want: true,
		},
		{
			name: "smtp_user_unknown",
			err:  errors.New("SMTP 5.1.1 user unknown"),
			want: true,
		},
		{
			name: "smtp_550_mailbox_unavailable",
			err:  errors.New("550 mailbox unavailable"),
			want: true,
		},
		{
			name: "network_timeout",
			err:  errors.New("dial tcp timeout"),
			want: false,
		},
		{
			name: "nil_error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isEmailRecipientRejected(tt.err); got != tt.want {
				t.Fatalf("isEmailRecipientRejected() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalizeEmailSendError(t *testing.T) {
	rejected := errors.New("550 No such recipient here")
	if got := normalizeEmailSendError(rejected); !errors.Is(got, ErrEmailRecipientRejected) {
		t.Fatalf("normalizeEmailSendError() expected ErrEmailRecipientRejected, got %v", got)
	}

	networkErr := errors.New("dial tcp timeout")
	if got := normalizeEmailSendError(networkErr); !errors.Is(got, networkErr) {
		t.Fatalf("normalizeEmailSendError() should keep original error, got %v", got)
	}

	if got := normalizeEmailSendError(nil); got != nil {
		t.Fatalf("normalizeEmailSendError(nil) should be nil, got %v", got)
	}
}
