package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/innovation-atlas/internal/domain"
	"github.com/innovation-atlas/internal/pkg/errors"
)

// queryValues возвращает все значения параметра: повторы "k=1&k=2", форму "k[]=1" и списки "k=1,2"
func queryValues(c *fiber.Ctx, key string) []string {
	args := c.Context().QueryArgs()

	var raw [][]byte
	raw = append(raw, args.PeekMulti(key)...)
	raw = append(raw, args.PeekMulti(key+"[]")...)

	var out []string
	for _, r := range raw {
		for _, part := range strings.Split(string(r), ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func queryInt64List(c *fiber.Ctx, key string) ([]int64, error) {
	values := queryValues(c, key)
	if len(values) == 0 {
		return nil, nil
	}

	ids := make([]int64, 0, len(values))
	for _, v := range values {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, invalidParam(key, "must be a list of integers")
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func queryOptionalInt64(c *fiber.Ctx, key string) (*int64, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, invalidParam(key, "must be an integer")
	}
	return &id, nil
}

func queryOptionalBool(c *fiber.Ctx, key string) (*bool, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, invalidParam(key, "must be true or false")
	}
	return &b, nil
}

// queryLang - язык из ?lang=, по умолчанию ru
func queryLang(c *fiber.Ctx) (domain.Language, error) {
	lang := domain.ParseLanguage(c.Query("lang"))
	if !lang.IsValid() {
		return "", invalidParam("lang", "must be one of: ru kz en")
	}
	return lang, nil
}

// paramID - положительный id из пути
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.ErrInvalidObjectID
	}
	return id, nil
}

func invalidParam(key, message string) error {
	return errors.ErrInvalidRequest.WithDetails(map[string]interface{}{key: message})
}
