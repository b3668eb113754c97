package util

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailRegistered     = errors.New("email already registered")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrLicenseNotVerified  = errors.New("medical license not verified")
	ErrActivityNotFound    = errors.New("activity not found")
	ErrActivityNotLive     = errors.New("activity not published or not accessible")
	ErrActivityExpired     = errors.New("activity has expired")
	ErrNoQuestionBank      = errors.New("activity has no question bank")
	ErrAttemptsExhausted   = errors.New("allowed attempts exhausted")
	ErrUnknownSpecialty    = errors.New("no requirement definition for specialty")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
	ErrContentNotFound     = errors.New("content not found")
	ErrPlanNotFound        = errors.New("subscription plan not found")
	ErrAlreadySubscribed   = errors.New("an active subscription already exists")
	ErrSubscriptionMissing = errors.New("no active subscription")
	ErrInvalidVideoExt     = errors.New("unsupported video extension")
	ErrUnauthorized        = errors.New("unauthorized")
)
