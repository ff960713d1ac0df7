package convertcmd

// FeatureGates exposes runtime toggles consulted by the handlers. Callers
// supply closures reading runtimeconfig.Config.Features so handlers stay
// decoupled from configuration.
type FeatureGates struct {
	PublishEnabled func() bool
}

func (g FeatureGates) publishEnabled() bool {
	if g.PublishEnabled == nil {
		return true
	}
	return g.PublishEnabled()
}
