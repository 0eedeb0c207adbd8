package stats

// Config is the statistics core's external configuration surface, the
// counterpart to check.Strategy that the config package loads from YAML.
type Config = ConfidenceConfig
