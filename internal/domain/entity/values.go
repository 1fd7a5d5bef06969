package entity

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/oksasatya/growth-partner/internal/domain/apperror"
)

const (
	MaxIDLength          = 255
	MaxUserNameLength    = 50
	MaxGoalTitleLength   = 100
	MaxGoalDescLength    = 1000
	minUserNameLength    = 1
	minGoalTitleLength   = 1
	userEmailPatternText = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
)

var userEmailPattern = regexp.MustCompile(userEmailPatternText)

// Value types wrap their primitive in an unexported field, so the New*
// constructors below are the only way to get a non-zero value.

type UserID struct{ v string }
type UserName struct{ v string }
type UserEmail struct{ v string }
type GoalID struct{ v string }
type GoalTitle struct{ v string }

// GoalDescription may legitimately be empty, so it carries a flag telling a
// constructed empty description apart from the zero value.
type GoalDescription struct {
	v  string
	ok bool
}

func (id UserID) String() string         { return id.v }
func (id UserID) IsZero() bool           { return id.v == "" }
func (n UserName) String() string        { return n.v }
func (n UserName) IsZero() bool          { return n.v == "" }
func (e UserEmail) String() string       { return e.v }
func (e UserEmail) IsZero() bool         { return e.v == "" }
func (id GoalID) String() string         { return id.v }
func (id GoalID) IsZero() bool           { return id.v == "" }
func (t GoalTitle) String() string       { return t.v }
func (t GoalTitle) IsZero() bool         { return t.v == "" }
func (d GoalDescription) String() string { return d.v }
func (d GoalDescription) IsZero() bool   { return !d.ok }

func NewUserID(raw string) (UserID, error) {
	v, err := opaqueID(raw, "user_id")
	if err != nil {
		return UserID{}, err
	}
	return UserID{v: v}, nil
}

func NewGoalID(raw string) (GoalID, error) {
	v, err := opaqueID(raw, "goal_id")
	if err != nil {
		return GoalID{}, err
	}
	return GoalID{v: v}, nil
}

// GenerateUserID returns a fresh random identifier.
func GenerateUserID() UserID { return UserID{v: uuid.NewString()} }

// GenerateGoalID returns a fresh random identifier.
func GenerateGoalID() GoalID { return GoalID{v: uuid.NewString()} }

func NewUserName(raw string) (UserName, error) {
	if err := checkLength(raw, "name", minUserNameLength, MaxUserNameLength); err != nil {
		return UserName{}, err
	}
	return UserName{v: raw}, nil
}

func NewUserEmail(raw string) (UserEmail, error) {
	if !userEmailPattern.MatchString(raw) {
		return UserEmail{}, apperror.Validation("must be a valid email address", "email")
	}
	return UserEmail{v: raw}, nil
}

func NewGoalTitle(raw string) (GoalTitle, error) {
	if err := checkLength(raw, "title", minGoalTitleLength, MaxGoalTitleLength); err != nil {
		return GoalTitle{}, err
	}
	return GoalTitle{v: raw}, nil
}

func NewGoalDescription(raw string) (GoalDescription, error) {
	if err := checkLength(raw, "description", 0, MaxGoalDescLength); err != nil {
		return GoalDescription{}, err
	}
	return GoalDescription{v: raw, ok: true}, nil
}

func opaqueID(raw, field string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", apperror.Validation("is required", field)
	}
	if utf8.RuneCountInString(raw) > MaxIDLength {
		return "", apperror.Validation(fmt.Sprintf("must be at most %d characters long", MaxIDLength), field)
	}
	return raw, nil
}

func checkLength(raw, field string, min, max int) error {
	n := utf8.RuneCountInString(raw)
	if n < min {
		if min == 1 {
			return apperror.Validation("is required", field)
		}
		return apperror.Validation(fmt.Sprintf("must be at least %d characters long", min), field)
	}
	if n > max {
		return apperror.Validation(fmt.Sprintf("must be at most %d characters long", max), field)
	}
	return nil
}
