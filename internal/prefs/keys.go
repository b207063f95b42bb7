package prefs

import (
	"strconv"
	"strings"

	"github.com/five82/tally/internal/apperr"
)

const (
	KeyUserName      = "user_name"
	KeyUserAge       = "user_age"
	KeyNotifications = "notifications"
	KeyUserRating    = "user_rating"
	KeyAppTheme      = "app_theme"
	KeyCounterTheme  = "counter_theme"
)

// Keys returns every preference key in file order.
func Keys() []string {
	return []string{KeyUserName, KeyUserAge, KeyNotifications, KeyUserRating, KeyAppTheme, KeyCounterTheme}
}

// Get returns the textual value stored under key.
func (p Prefs) Get(key string) (string, error) {
	switch key {
	case KeyUserName:
		return p.UserName, nil
	case KeyUserAge:
		return strconv.Itoa(p.UserAge), nil
	case KeyNotifications:
		return strconv.FormatBool(p.Notifications), nil
	case KeyUserRating:
		return strconv.FormatFloat(p.UserRating, 'f', 1, 64), nil
	case KeyAppTheme:
		return string(p.AppTheme), nil
	case KeyCounterTheme:
		return string(p.CounterTheme), nil
	}
	return "", apperr.Newf(apperr.Validation, "unknown preference %q", key)
}

// Set parses value for key and stores it. The result is validated.
func (p *Prefs) Set(key, value string) error {
	value = strings.TrimSpace(value)
	next := *p
	switch key {
	case KeyUserName:
		next.UserName = value
	case KeyUserAge:
		n, err := strconv.Atoi(value)
		if err != nil {
			return apperr.Wrapf(apperr.Validation, err, "%s must be an integer", key)
		}
		next.UserAge = n
	case KeyNotifications:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return apperr.Wrapf(apperr.Validation, err, "%s must be true or false", key)
		}
		next.Notifications = b
	case KeyUserRating:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return apperr.Wrapf(apperr.Validation, err, "%s must be a number", key)
		}
		next.UserRating = RoundRating(f)
	case KeyAppTheme:
		next.AppTheme = AppTheme(strings.ToLower(value))
	case KeyCounterTheme:
		next.CounterTheme = CounterTheme(strings.ToLower(value))
	default:
		return apperr.Newf(apperr.Validation, "unknown preference %q", key)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*p = next
	return nil
}

func keyForField(field string) string {
	switch field {
	case "UserName":
		return KeyUserName
	case "UserAge":
		return KeyUserAge
	case "Notifications":
		return KeyNotifications
	case "UserRating":
		return KeyUserRating
	case "AppTheme":
		return KeyAppTheme
	case "CounterTheme":
		return KeyCounterTheme
	}
	return field
}
