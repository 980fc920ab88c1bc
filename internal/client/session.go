package client

import (
	"context"
	"log/slog"
)

const (
	flashSuccess = "Success"
	flashDeleted = "Customer has been Deleted!"
)

// Session binds a Form, a results Table and a flash line to a Client, one
// method per action the user can take.
type Session struct {
	Form  Form
	Table Table
	Flash string

	client *Client
	logger *slog.Logger
}

func NewSession(c *Client, logger *slog.Logger) *Session {
	if c == nil {
		panic("client cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{client: c, logger: logger.With("component", "clientSession")}
}

func (s *Session) Create(ctx context.Context) error {
	s.Form.submit()
	rec, err := s.client.Create(ctx, s.Form.Body())
	if err != nil {
		return s.fail(ctx, "create", err, false)
	}
	s.Form.Populate(*rec)
	s.Flash = flashSuccess
	return nil
}

func (s *Session) Retrieve(ctx context.Context) error {
	s.Form.submit()
	rec, err := s.client.Get(ctx, s.Form.ID)
	if err != nil {
		return s.fail(ctx, "retrieve", err, true)
	}
	s.Form.Populate(*rec)
	s.Flash = flashSuccess
	return nil
}

func (s *Session) Update(ctx context.Context) error {
	s.Form.submit()
	rec, err := s.client.Update(ctx, s.Form.ID, s.Form.Body())
	if err != nil {
		return s.fail(ctx, "update", err, false)
	}
	s.Form.Populate(*rec)
	s.Flash = flashSuccess
	return nil
}

func (s *Session) Delete(ctx context.Context) error {
	s.Form.submit()
	if err := s.client.Delete(ctx, s.Form.ID); err != nil {
		return s.fail(ctx, "delete", err, true)
	}
	s.Form.Clear()
	s.Flash = flashDeleted
	return nil
}

func (s *Session) Suspend(ctx context.Context) error {
	s.Form.submit()
	rec, err := s.client.Suspend(ctx, s.Form.ID)
	if err != nil {
		return s.fail(ctx, "suspend", err, false)
	}
	s.Form.Populate(*rec)
	s.Flash = flashSuccess
	return nil
}

// Search renders every match into the table and loads the first one into
// the form.
func (s *Session) Search(ctx context.Context) error {
	query := s.Form.SearchQuery()
	s.Form.submit()
	records, err := s.client.Search(ctx, query)
	if err != nil {
		s.Table.Reset()
		return s.fail(ctx, "search", err, false)
	}
	s.Table.Set(records)
	if len(records) > 0 {
		s.Form.Populate(records[0])
	}
	s.Flash = flashSuccess
	return nil
}

// Clear empties the form without touching the network.
func (s *Session) Clear() {
	s.Form.Clear()
	s.Flash = ""
}

func (s *Session) fail(ctx context.Context, action string, err error, clearForm bool) error {
	if clearForm {
		s.Form.Clear()
	}
	s.Flash = FlashMessage(err)
	s.logger.WarnContext(ctx, "Customer request failed", slog.String("action", action), slog.Any("error", err))
	return err
}
