package prompts

import (
	_ "embed"
)

//go:embed summary_web.txt
var SummaryWeb string

//go:embed summary_news.txt
var SummaryNews string

//go:embed summary_humanized.txt
var SummaryHumanized string
