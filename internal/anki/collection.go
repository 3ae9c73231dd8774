package anki

import (
	"encoding/json"
	"strconv"

	"github.com/kpauljoseph/ankigen/pkg/models"
)

// The JSON blobs stored in the col row. Shapes follow Anki's
// collection schema version 11.

const cardCSS = `.card {
    font-family: arial;
    font-size: 20px;
    text-align: center;
    color: black;
    background-color: white;
}`

const latexPre = `\documentclass[12pt]{article}
\special{papersize=3in,5in}
\usepackage[utf8]{inputenc}
\usepackage{amssymb,amsmath}
\pagestyle{empty}
\setlength{\parindent}{0in}
\begin{document}
`

const latexPost = `\end{document}`

func confJSON(schema models.NoteSchema) (string, error) {
	conf := map[string]interface{}{
		"activeDecks":   []int64{1},
		"addToCur":      true,
		"collapseTime":  1200,
		"curDeck":       1,
		"curModel":      strconv.FormatInt(schema.ID, 10),
		"dueCounts":     true,
		"estTimes":      true,
		"newBury":       true,
		"newSpread":     0,
		"nextPos":       1,
		"sortBackwards": false,
		"sortType":      "noteFld",
		"timeLim":       0,
	}
	return marshal(conf)
}

func modelsJSON(deck *models.Deck, now int64) (string, error) {
	fields := make([]map[string]interface{}, len(deck.Schema.Fields))
	for i, name := range deck.Schema.Fields {
		fields[i] = map[string]interface{}{
			"name":   name,
			"ord":    i,
			"sticky": false,
			"rtl":    false,
			"font":   "Arial",
			"size":   20,
			"media":  []string{},
		}
	}

	model := map[string]interface{}{
		"id":    deck.Schema.ID,
		"name":  deck.Schema.Name,
		"type":  0,
		"mod":   now,
		"usn":   -1,
		"sortf": 0,
		"did":   deck.ID,
		"tmpls": []map[string]interface{}{
			{
				"name":  TemplateName,
				"ord":   0,
				"qfmt":  deck.Schema.QFmt,
				"afmt":  deck.Schema.AFmt,
				"bqfmt": "",
				"bafmt": "",
				"did":   nil,
			},
		},
		"flds":      fields,
		"css":       cardCSS,
		"latexPre":  latexPre,
		"latexPost": latexPost,
		"latexsvg":  false,
		"req":       []interface{}{[]interface{}{0, "all", []int{0}}},
		"tags":      []string{},
		"vers":      []string{},
	}

	return marshal(map[string]interface{}{
		strconv.FormatInt(deck.Schema.ID, 10): model,
	})
}

func decksJSON(deck *models.Deck, now int64) (string, error) {
	entry := func(id int64, name string) map[string]interface{} {
		return map[string]interface{}{
			"id":               id,
			"name":             name,
			"desc":             "",
			"mod":              now,
			"usn":              -1,
			"collapsed":        false,
			"browserCollapsed": false,
			"newToday":         []int{0, 0},
			"revToday":         []int{0, 0},
			"lrnToday":         []int{0, 0},
			"timeToday":        []int{0, 0},
			"dyn":              0,
			"extendNew":        0,
			"extendRev":        0,
			"conf":             1,
		}
	}

	decks := map[string]interface{}{
		"1": entry(1, "Default"),
	}
	decks[strconv.FormatInt(deck.ID, 10)] = entry(deck.ID, deck.Name)

	return marshal(decks)
}

func dconfJSON() (string, error) {
	return marshal(map[string]interface{}{
		"1": map[string]interface{}{
			"id":       1,
			"name":     "Default",
			"replayq":  true,
			"timer":    0,
			"maxTaken": 60,
			"usn":      -1,
			"mod":      0,
			"autoplay": true,
			"new": map[string]interface{}{
				"perDay":        20,
				"delays":        []int{1, 10},
				"separate":      true,
				"ints":          []int{1, 4, 7},
				"initialFactor": 2500,
				"bury":          true,
				"order":         1,
			},
			"rev": map[string]interface{}{
				"perDay":   100,
				"fuzz":     0.05,
				"ivlFct":   1,
				"maxIvl":   36500,
				"ease4":    1.3,
				"bury":     true,
				"minSpace": 1,
			},
			"lapse": map[string]interface{}{
				"leechFails":  8,
				"minInt":      1,
				"delays":      []int{10},
				"leechAction": 0,
				"mult":        0,
			},
		},
	})
}

func marshal(v interface{}) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
