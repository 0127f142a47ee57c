package httpapi

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/nguyentantai21042004/recap/internal/audio"
	"github.com/nguyentantai21042004/recap/internal/errors"
	"github.com/nguyentantai21042004/recap/internal/history"
)

type storedRequest struct {
	Ref string `json:"ref"`
}

type saveHistoryRequest struct {
	Req     string `json:"req"`
	Message string `json:"message"`
}

type deleteSelectedRequest struct {
	HistoryIDs []string `json:"history_ids"`
}

func (s *Server) home(c *fiber.Ctx) error {
	return c.SendString("Hello, API is running!")
}

// chat runs the pipeline on a multipart "audio" upload.
func (s *Server) chat(c *fiber.Ctx) error {
	fh, err := c.FormFile("audio")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No audio file provided"})
	}

	f, err := fh.Open()
	if err != nil {
		return s.fail(c, errors.NewAudioSource(err))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return s.fail(c, errors.NewAudioSource(err))
	}

	return s.run(c, audio.FromBytes(fh.Filename, data))
}

// chatStored runs the pipeline on audio already in a content store.
func (s *Server) chatStored(c *fiber.Ctx) error {
	var req storedRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, errors.NewInvalidRequest("invalid JSON"))
	}

	src, err := audio.FromRef(req.Ref)
	if err != nil {
		return s.fail(c, errors.NewInvalidRequest(err.Error()))
	}
	return s.run(c, src)
}

func (s *Server) run(c *fiber.Ctx, src audio.Source) error {
	res, err := s.pipeline.Run(c.UserContext(), src)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(res.Payload())
}

// saveHistory titles and stores a summary the caller already has.
func (s *Server) saveHistory(c *fiber.Ctx) error {
	var req saveHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, errors.NewInvalidRequest("invalid JSON"))
	}

	summary := req.Req
	if summary == "" {
		summary = req.Message
	}
	if summary == "" {
		return s.fail(c, errors.NewInvalidRequest("req or message is required"))
	}

	out, err := s.recorder.Record(c.UserContext(), summary, history.Meta{})
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(out.Payload())
}

// caller returns the logged in user behind the bearer token. A user_id query
// parameter, when given, must name that same user.
func (s *Server) caller(c *fiber.Ctx) (string, error) {
	ident, err := s.checker.CheckLogin(c.UserContext())
	if err != nil {
		return "", errors.NewUnauthorized("invalid token")
	}
	if !ident.LoggedIn || ident.UserID == "" {
		return "", errors.NewUnauthorized("login required")
	}
	if q := c.Query("user_id"); q != "" && q != ident.UserID {
		return "", errors.NewForbidden("user_id does not match the logged in user")
	}
	return ident.UserID, nil
}

func (s *Server) listHistory(c *fiber.Ctx) error {
	userID, err := s.caller(c)
	if err != nil {
		return s.fail(c, err)
	}
	records, err := s.history.List(c.UserContext(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"history_record": records})
}

func (s *Server) deleteHistory(c *fiber.Ctx) error {
	userID, err := s.caller(c)
	if err != nil {
		return s.fail(c, err)
	}
	msg, err := s.history.DeleteOneOf(c.UserContext(), userID, c.Query("history_id"))
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": msg})
}

func (s *Server) deleteAllHistory(c *fiber.Ctx) error {
	userID, err := s.caller(c)
	if err != nil {
		return s.fail(c, err)
	}
	msg, err := s.history.DeleteAll(c.UserContext(), userID)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": msg})
}

func (s *Server) deleteSelectedHistory(c *fiber.Ctx) error {
	userID, err := s.caller(c)
	if err != nil {
		return s.fail(c, err)
	}
	var req deleteSelectedRequest
	if err := c.BodyParser(&req); err != nil {
		return s.fail(c, errors.NewInvalidRequest("invalid JSON"))
	}

	msg, err := s.history.DeleteSelectedOf(c.UserContext(), userID, req.HistoryIDs)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": msg})
}

// fail writes the structured error payload with its status code.
func (s *Server) fail(c *fiber.Ctx, err error) error {
	pErr := errors.As(err)
	if pErr.Status >= 500 {
		s.logger.Error(c.UserContext(), "%s %s failed: %v", c.Method(), c.Path(), err)
	}
	return c.Status(pErr.Status).JSON(pErr.Payload())
}
