package server

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/chart"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/dataset"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/insight"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/report"
	"github.com/sapyyens/Dashboard--EDA-robloxmania/internal/survey"
)

type Handler struct {
	bundle  *dataset.Bundle
	engine  *insight.Engine
	builder *report.Builder
	chart   chart.Options
	log     zerolog.Logger
}

func NewHandler(b *dataset.Bundle, e *insight.Engine, co chart.Options, log zerolog.Logger) *Handler {
	return &Handler{bundle: b, engine: e, builder: report.NewBuilder(b, e, log), chart: co, log: log}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Index)
	e.GET("/healthz", h.Health)
	e.GET("/page/:menu", h.Page)
	e.GET("/page/:menu/:sub", h.Page)
	e.GET("/chart/:id", h.Chart)

	api := e.Group("/api")
	api.GET("/columns", h.Columns)
	api.GET("/interpret", h.Interpret)
	api.GET("/crosstab", h.Crosstab)
}

// --- HTML ---

func (h *Handler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index", indexView{Menus: survey.Catalog(), RunID: h.bundle.RunID, Rows: h.bundle.Rows()})
}

func (h *Handler) Page(c echo.Context) error {
	menu, sub := c.Param("menu"), c.Param("sub")
	p, ok := survey.FindPage(menu, sub)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("page %s/%s not found", menu, sub))
	}
	x, y, err := pairParams(c)
	if err != nil {
		return err
	}
	menuTitle := ""
	for _, m := range survey.Catalog() {
		if m.Key == p.Menu {
			menuTitle = m.Title
		}
	}
	rp := h.builder.Page(menuTitle, p, x, y)
	return c.Render(http.StatusOK, "page", newPageView(rp, x, y))
}

// --- images ---

// Chart renders a catalogue view, the crosstab (?x=&y=) or a column distribution
// ("column-<code>") as an image.
func (h *Handler) Chart(c echo.Context) error {
	format := h.chart.Format
	if q := c.QueryParam("format"); q != "" {
		f, err := chart.ParseFormat(q)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		format = f
	}
	id := c.Param("id")
	var s report.Section
	switch {
	case id == "crosstab":
		x, y, err := pairParams(c)
		if err != nil {
			return err
		}
		if s, err = h.builder.Crosstab(x, y); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
	case strings.HasPrefix(id, "column-"):
		col, err := survey.Parse(strings.TrimPrefix(id, "column-"))
		if err != nil || col == survey.None {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("unknown column in %s", id))
		}
		if s, err = h.builder.Distribution(col); err != nil {
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		}
	default:
		v, ok := survey.FindView(id)
		if !ok {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("chart %s not found", id))
		}
		s = h.builder.View(v)
	}
	if s.Chart == nil {
		return echo.NewHTTPError(http.StatusNotFound, s.Note)
	}
	opt := h.chart
	opt.Format = format
	data, err := chart.Bytes(*s.Chart, opt)
	if errors.Is(err, chart.ErrEmpty) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	}
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, opt.Format.ContentType(), data)
}

// --- JSON ---

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"run_id": h.bundle.RunID,
		"rows":   h.bundle.Rows(),
	})
}

type columnInfo struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Short   string `json:"short"`
	Source  string `json:"source"`
	Present bool   `json:"present"`
}

func (h *Handler) Columns(c echo.Context) error {
	var out []columnInfo
	for _, col := range survey.All() {
		out = append(out, columnInfo{
			Code:    col.Code(),
			Name:    col.Name(),
			Short:   col.Short(),
			Source:  col.Source().String(),
			Present: h.bundle.Has(col),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Interpret(c echo.Context) error {
	primary, err := columnParam(c, "primary")
	if err != nil {
		return err
	}
	if primary == survey.None {
		return echo.NewHTTPError(http.StatusBadRequest, "primary is required")
	}
	secondary, err := columnParam(c, "secondary")
	if err != nil {
		return err
	}
	for _, col := range []survey.Column{primary, secondary} {
		if col.Source() == survey.Derived {
			return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s is a derived band; interpret the raw column instead", col.Code()))
		}
	}
	return c.JSON(http.StatusOK, newInsightJSON(h.engine.Interpret(h.bundle, primary, secondary)))
}

type crosstabJSON struct {
	X           string      `json:"x"`
	Y           string      `json:"y"`
	Rows        []string    `json:"rows"`
	Cols        []string    `json:"cols"`
	Counts      [][]int     `json:"counts"`
	RowPercent  [][]float64 `json:"row_percent"`
	N           int         `json:"n"`
	Description string      `json:"description,omitempty"`
	Insight     string      `json:"insight,omitempty"`
	Note        string      `json:"note,omitempty"`
}

func (h *Handler) Crosstab(c echo.Context) error {
	x, y, err := pairParams(c)
	if err != nil {
		return err
	}
	s, err := h.builder.Crosstab(x, y)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if x == survey.None {
		x = survey.TaskDifficulty
	}
	if y == survey.None {
		y = survey.DisciplineImpact
	}
	out := crosstabJSON{X: x.Code(), Y: y.Code(), Description: s.Narrative, Insight: s.Insight, Note: s.Note}
	if s.Table != nil {
		out.Rows, out.Cols, out.Counts = s.Table.Rows, s.Table.Cols, s.Table.Counts
		out.RowPercent = s.Table.RowPercent()
		out.N = s.Table.N()
	}
	return c.JSON(http.StatusOK, out)
}

func columnParam(c echo.Context, name string) (survey.Column, error) {
	col, err := survey.Parse(c.QueryParam(name))
	if err != nil {
		return survey.None, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("%s: %v", name, err))
	}
	return col, nil
}

func pairParams(c echo.Context) (survey.Column, survey.Column, error) {
	x, err := columnParam(c, "x")
	if err != nil {
		return survey.None, survey.None, err
	}
	y, err := columnParam(c, "y")
	if err != nil {
		return survey.None, survey.None, err
	}
	return x, y, nil
}

func pairQuery(x, y survey.Column) string {
	v := url.Values{}
	if x != survey.None {
		v.Set("x", x.Code())
	}
	if y != survey.None {
		v.Set("y", y.Code())
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}
