package handlers

import (
	"sync"

	"github.com/SscSPs/burnout_journal/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding tags used by the request structs.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("journaldate", func(fl validator.FieldLevel) bool {
				return domain.IsValidJournalDate(fl.Field().String())
			})
		}
	})
}

// journalURI binds the :date path segment.
type journalURI struct {
	Date string `uri:"date" binding:"required,journaldate"`
}

// entryURI binds the :date and :entryID path segments.
type entryURI struct {
	Date    string `uri:"date" binding:"required,journaldate"`
	EntryID string `uri:"entryID" binding:"required,uuid"`
}
