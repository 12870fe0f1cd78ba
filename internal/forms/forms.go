// Package forms validates submitted login and entry data before it reaches
// storage. Validation is a single synchronous pass producing field-level
// errors the handlers hand back for re-rendering.
package forms

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLen    = 100
	MaxTagsLen     = 30
	MinPasswordLen = 8
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	urlPattern   = regexp.MustCompile(`https?://\S+`)
)

// Errors maps a field name to the messages recorded against it.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Has(field string) bool {
	return len(e[field]) > 0
}

type LoginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (f *LoginForm) Validate() (Errors, bool) {
	errs := Errors{}

	email := strings.TrimSpace(f.Email)
	if email == "" {
		errs.Add("email", "This field is required.")
	} else if !emailPattern.MatchString(email) {
		errs.Add("email", "That is not a valid email address!")
	}

	if f.Password == "" {
		errs.Add("password", "This field is required.")
	} else if utf8.RuneCountInString(f.Password) < MinPasswordLen {
		errs.Add("password", fmt.Sprintf("Passwords must be a minimum of %d characters", MinPasswordLen))
	}

	return errs, len(errs) == 0
}

type EntryForm struct {
	Title     string     `form:"title" json:"title"`
	Duration  string     `form:"duration" json:"duration"`
	Learnings string     `form:"learnings" json:"learnings"`
	Resources string     `form:"resources" json:"resources"`
	Tags      string     `form:"tags" json:"tags"`
	EntryDate *time.Time `form:"entry_date" json:"entry_date" time_format:"2006-01-02 15:04:05"`
}

// Validate returns all field errors and whether submission may proceed.
// The resources URL pattern check is advisory: a non-empty value that does
// not look like an http(s) URL records an error but does not block the
// submission. This mirrors the long-standing observable behavior of the form.
func (f *EntryForm) Validate() (Errors, bool) {
	errs := Errors{}
	blocking := 0

	if strings.TrimSpace(f.Title) == "" {
		errs.Add("title", "This field is required.")
		blocking++
	} else if utf8.RuneCountInString(f.Title) > MaxTitleLen {
		errs.Add("title", fmt.Sprintf("Field cannot be longer than %d characters.", MaxTitleLen))
		blocking++
	}

	if strings.TrimSpace(f.Duration) == "" {
		errs.Add("duration", "This field is required.")
		blocking++
	}

	if strings.TrimSpace(f.Learnings) == "" {
		errs.Add("learnings", "This field is required.")
		blocking++
	}

	if strings.TrimSpace(f.Resources) == "" {
		errs.Add("resources", "This field is required.")
		blocking++
	} else if !urlPattern.MatchString(f.Resources) {
		// advisory only
		errs.Add("resources", "You must enter a URL in the format http(s)://...")
	}

	if strings.TrimSpace(f.Tags) == "" {
		errs.Add("tags", "This field is required.")
		blocking++
	} else if utf8.RuneCountInString(f.Tags) > MaxTagsLen {
		errs.Add("tags", fmt.Sprintf("Field cannot be longer than %d characters.", MaxTagsLen))
		blocking++
	}

	return errs, blocking == 0
}

// EntryDateOrNow returns the submitted entry date, defaulting to now.
func (f *EntryForm) EntryDateOrNow() time.Time {
	if f.EntryDate != nil && !f.EntryDate.IsZero() {
		return *f.EntryDate
	}
	return time.Now()
}
