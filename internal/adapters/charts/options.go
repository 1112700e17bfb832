package charts

// Option configures a Renderer.
type Option func(*Renderer)

// WithAssetsHost sets where the page loads the echarts scripts from.
func WithAssetsHost(host string) Option {
	return func(r *Renderer) {
		if host != "" {
			r.assetsHost = host
		}
	}
}

// WithTheme sets the echarts theme name.
func WithTheme(theme string) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithMaxBars caps the number of bars per chart. Non-positive means no cap.
func WithMaxBars(n int) Option {
	return func(r *Renderer) {
		r.maxBars = n
	}
}
