// Package imdbweb scrapes IMDb's public HTML pages: the title page as the
// waterfall's last real metadata source, and the episode-listing page for
// episode titles. Selector candidates come from configuration so markup
// drift is absorbed without code changes.
package imdbweb
