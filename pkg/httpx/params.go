package httpx

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ErrBadPage — limit/offset в query не число или вне допустимого диапазона.
var ErrBadPage = errors.New("bad paging parameters")

// Page — окно выборки журнала.
type Page struct {
	Limit  int
	Offset int
}

// ParsePage — читает limit/offset из query.
// Отсутствующий параметр → значение по умолчанию; limit выше maxLimit урезается до maxLimit.
// Не число, limit < 1 или offset < 0 → ErrBadPage.
func ParsePage(c *gin.Context, defaultLimit, maxLimit int) (Page, error) {
	page := Page{Limit: min(max(defaultLimit, 1), maxLimit)}

	if raw, ok := c.GetQuery("limit"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 {
			return Page{}, fmt.Errorf("%w: limit=%q", ErrBadPage, raw)
		}
		page.Limit = min(v, maxLimit)
	}

	if raw, ok := c.GetQuery("offset"); ok {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return Page{}, fmt.Errorf("%w: offset=%q", ErrBadPage, raw)
		}
		page.Offset = v
	}

	return page, nil
}
