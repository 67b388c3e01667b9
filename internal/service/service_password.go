// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/MKhiriev/go-pass-vault/internal/validators"
	"github.com/MKhiriev/go-pass-vault/models"
)

const (
	lowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	uppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberChars    = "0123456789"
	symbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	lookAlikeChars = "l1I|o0O"

	maxStrength = 5
)

var strengthLabels = [maxStrength + 1]string{"Very Weak", "Weak", "Fair", "Good", "Strong", "Very Strong"}

type passwordService struct {
	random    io.Reader
	validator validators.Validator
}

// NewPasswordService returns a generator backed by crypto/rand.
func NewPasswordService() PasswordService {
	return &passwordService{
		random:    rand.Reader,
		validator: validators.NewVaultValidator(),
	}
}

// Generate draws each character uniformly from the selected classes.
func (s *passwordService) Generate(opts models.PasswordOptions) (string, error) {
	if err := s.validator.Validate(context.Background(), opts); err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}

	charset := buildCharset(opts)
	if charset == "" {
		return "", fmt.Errorf("%w: %w", ErrValidation, validators.ErrEmptyPasswordCharset)
	}

	limit := big.NewInt(int64(len(charset)))
	password := make([]byte, opts.Length)
	for i := range password {
		n, err := rand.Int(s.random, limit)
		if err != nil {
			return "", fmt.Errorf("error reading random source: %w", err)
		}
		password[i] = charset[n.Int64()]
	}

	return string(password), nil
}

func buildCharset(opts models.PasswordOptions) string {
	var sb strings.Builder
	if opts.IncludeLetters {
		sb.WriteString(lowercaseChars)
		sb.WriteString(uppercaseChars)
	}
	if opts.IncludeNumbers {
		sb.WriteString(numberChars)
	}
	if opts.IncludeSymbols {
		sb.WriteString(symbolChars)
	}

	charset := sb.String()
	if opts.ExcludeLookAlikes {
		charset = strings.Map(func(r rune) rune {
			if strings.ContainsRune(lookAlikeChars, r) {
				return -1
			}
			return r
		}, charset)
	}

	return charset
}

// Strength scores password from 0 to 5: one point each for reaching 8, 12
// and 16 characters, one per character class present, capped at 5.
func (s *passwordService) Strength(password string) int {
	score := 0

	length := len([]rune(password))
	for _, threshold := range []int{8, 12, 16} {
		if length >= threshold {
			score++
		}
	}

	var lower, upper, digit, other bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		default:
			other = true
		}
	}
	for _, present := range []bool{lower, upper, digit, other} {
		if present {
			score++
		}
	}

	return min(score, maxStrength)
}

func (s *passwordService) StrengthLabel(score int) string {
	if score < 0 || score > maxStrength {
		return strengthLabels[0]
	}
	return strengthLabels[score]
}
