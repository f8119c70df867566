package webui

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"farezone.transit.org/internal/app"
	"farezone.transit.org/internal/report"
)

//go:embed debug_index.html
var templateFS embed.FS

var debugTemplate = template.Must(template.ParseFS(templateFS, "debug_index.html"))

var dataTypes = []string{"lines", "names", "labels", "graph", "intersections", "zones", "report"}

// WebUI serves debugging views of the loaded network.
type WebUI struct {
	*app.Application
}

type debugData struct {
	Title  string
	Pre    string
	Types  []string
	Origin string
}

func writeDebugData(w http.ResponseWriter, title, origin, pre string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := debugTemplate.Execute(w, debugData{
		Title:  title,
		Pre:    pre,
		Types:  dataTypes,
		Origin: origin,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")
	origin := r.URL.Query().Get("origin")
	if origin == "" {
		origin = webUI.Config.Origin
	}

	var (
		data  interface{}
		title string
	)

	switch dataType {
	case "lines":
		data = webUI.Dataset.Lines
		title = "Station Records - Lines"
	case "names":
		data = webUI.Dataset.Names
		title = "Station Records - Names"
	case "labels":
		data = webUI.Dataset.Labels
		title = "Station Records - Labels"
	case "graph":
		data = webUI.Graph.Edges()
		title = "Network - Edges"
	case "intersections":
		data = webUI.Intersections()
		title = "Network - Intersections"
	case "zones", "report":
		zoning, err := webUI.Zones(origin)
		if err != nil {
			writeDebugData(w, "Zones", origin, err.Error())
			return
		}
		if dataType == "zones" {
			writeDebugData(w, "Zones from "+origin, origin, spew.Sdump(zoning.Zones))
			return
		}
		var buf bytes.Buffer
		if err := report.ZonedLines(&buf, zoning.Zones, webUI.Dataset, webUI.LineNames); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeDebugData(w, "Zone report from "+origin, origin, buf.String())
		return
	default:
		data = map[string]string{
			"error": "Please use one of the following: lines, names, labels, graph, intersections, zones, report.",
		}
		title = "Choose a data type"
	}

	writeDebugData(w, title, origin, spew.Sdump(data))
}
