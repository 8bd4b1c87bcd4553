package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/mmynk/chitfund/internal/models"
)

var (
	ErrInvalidPhone     = errors.New("phone number must be 10 digits")
	ErrUnknownPhone     = errors.New("phone number is not registered")
	ErrInvalidCode      = errors.New("code must be 6 digits")
	ErrCodeExpired      = errors.New("code expired or not requested")
	ErrTooManyAttempts  = errors.New("too many attempts, request a new code")
	errCodeDeliveryFail = errors.New("failed to deliver code")
)

const (
	otpDigits   = 6
	maxAttempts = 5
)

// MemberDirectory resolves a member by registered phone number.
type MemberDirectory interface {
	FindMemberByPhone(phone string) (models.Member, bool)
}

// CodeSender delivers a one-time code to a phone.
type CodeSender interface {
	SendCode(ctx context.Context, phone, code string) error
}

// LogSender writes codes to the log instead of sending an SMS.
type LogSender struct{}

// SendCode logs the code at info level.
func (LogSender) SendCode(_ context.Context, phone, code string) error {
	slog.Info("One-time code issued", "phone", maskPhone(phone), "code", code)
	return nil
}

type pendingCode struct {
	code     string
	memberID string
	expires  time.Time
	attempts int
}

// OTPAuthenticator implements member login with one-time codes.
type OTPAuthenticator struct {
	members MemberDirectory
	sender  CodeSender
	ttl     time.Duration
	now     func() time.Time

	mu      sync.Mutex
	pending map[string]*pendingCode
}

// NewOTPAuthenticator creates a member authenticator issuing codes valid for ttl.
func NewOTPAuthenticator(members MemberDirectory, sender CodeSender, ttl time.Duration) *OTPAuthenticator {
	return &OTPAuthenticator{
		members: members,
		sender:  sender,
		ttl:     ttl,
		now:     time.Now,
		pending: make(map[string]*pendingCode),
	}
}

// RequestCode issues a new code for the member registered with phone,
// replacing any earlier code.
func (a *OTPAuthenticator) RequestCode(ctx context.Context, phone string) error {
	if !isDigits(phone, 10) {
		return ErrInvalidPhone
	}
	member, ok := a.members.FindMemberByPhone(phone)
	if !ok {
		return ErrUnknownPhone
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.pending[phone] = &pendingCode{
		code:     code,
		memberID: member.ID,
		expires:  a.now().Add(a.ttl),
	}
	a.mu.Unlock()

	if err := a.sender.SendCode(ctx, phone, code); err != nil {
		a.mu.Lock()
		delete(a.pending, phone)
		a.mu.Unlock()
		return fmt.Errorf("%w: %v", errCodeDeliveryFail, err)
	}
	return nil
}

// ValidateCredential checks the code is six digits.
func (a *OTPAuthenticator) ValidateCredential(credential string) error {
	if !isDigits(credential, otpDigits) {
		return ErrInvalidCode
	}
	return nil
}

// Authenticate consumes the code issued for phone and returns the member's
// session user.
func (a *OTPAuthenticator) Authenticate(ctx context.Context, phone, code string) (models.AuthUser, error) {
	if err := a.ValidateCredential(code); err != nil {
		return models.AuthUser{}, err
	}

	a.mu.Lock()
	p, ok := a.pending[phone]
	if !ok || a.now().After(p.expires) {
		delete(a.pending, phone)
		a.mu.Unlock()
		return models.AuthUser{}, ErrCodeExpired
	}
	if p.attempts >= maxAttempts {
		delete(a.pending, phone)
		a.mu.Unlock()
		return models.AuthUser{}, ErrTooManyAttempts
	}
	if subtle.ConstantTimeCompare([]byte(p.code), []byte(code)) != 1 {
		p.attempts++
		a.mu.Unlock()
		return models.AuthUser{}, ErrInvalidCredentials
	}
	delete(a.pending, phone)
	a.mu.Unlock()

	// The member may have been removed or renumbered since the code was sent.
	member, ok := a.members.FindMemberByPhone(phone)
	if !ok || member.ID != p.memberID {
		return models.AuthUser{}, ErrUnknownPhone
	}
	return models.AuthUser{
		ID:       member.ID,
		Name:     member.Name,
		Role:     models.RoleMember,
		MemberID: member.ID,
	}, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func maskPhone(phone string) string {
	if len(phone) < 4 {
		return "****"
	}
	return "******" + phone[len(phone)-4:]
}
