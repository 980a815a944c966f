package runner

import (
	"github.com/projectdiscovery/gologger"
)

var banner = (`
 _                          _
| |__   ___  _   _ _ __   __| | __ _ _ __ _   ___  __
| '_ \ / _ \| | | | '_ \ / _` + "`" + ` |/ _` + "`" + ` | '__| | | \ \/ /
| |_) | (_) | |_| | | | | (_| | (_| | |  | |_| |>  <
|_.__/ \___/ \__,_|_| |_|\__,_|\__,_|_|   \__, /_/\_\
                                          |___/
`)

var version = "v0.0.1"

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
}
