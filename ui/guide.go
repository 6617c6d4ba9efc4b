package ui

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gomarkdown/markdown"
)

// readingGuide explains each dashboard view. Served rendered so the frontend
// can drop it straight into an expander.
const readingGuide = `## How to read this page

- **Trend:** selected indicators across time. A log scale helps when magnitudes differ.
- **Year snapshot:** selected indicators compared in a single year.
- **Scatter:** explores relationships between two indicators with an OLS trendline.
- **Indexed to 100:** compares growth regardless of units; every series equals 100 at the base year.
- **Ratio:** condenses two series into a single stress metric (such as short-term debt over reserves).
- **Rolling correlation:** reveals regime shifts, where a relationship changes sign over time.
`

func (s *Server) handleGuide(c *gin.Context) {
	html := markdown.ToHTML([]byte(readingGuide), nil, nil)
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}
