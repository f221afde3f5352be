package config

const (
	// DefaultHost binds the status service on all interfaces.
	DefaultHost = "0.0.0.0"

	// DefaultPort is the default HTTP server port.
	DefaultPort = "8000"

	// DefaultAppEnv is used when APP_ENV is not set.
	DefaultAppEnv = "development"

	// DefaultDatabasePassword is used when DATABASE_PASSWORD is not set.
	DefaultDatabasePassword = "not-set"

	// DefaultTaskLogPath is the file the periodic task appends to.
	DefaultTaskLogPath = "/tmp/cronjob.log"

	// DefaultName names the rendered Kubernetes objects.
	DefaultName = "statuscron"

	// DefaultSchedule is the CronJob schedule for the periodic task.
	DefaultSchedule = "*/5 * * * *"
)

// Server configures the HTTP status service.
type Server struct {
	Host string
	Port string
}

// Addr returns the listen address in host:port form.
func (s Server) Addr() string {
	return s.Host + ":" + s.Port
}

// Task configures one run of the periodic task.
type Task struct {
	AppEnv           string
	DatabasePassword string
	LogPath          string
}

// NewTask returns a Task populated with the defaults.
func NewTask() Task {
	return Task{
		AppEnv:           DefaultAppEnv,
		DatabasePassword: DefaultDatabasePassword,
		LogPath:          DefaultTaskLogPath,
	}
}

// Manifest configures the rendered Kubernetes objects.
type Manifest struct {
	Name             string
	Namespace        string
	Image            string
	Port             int32
	Schedule         string
	AppEnv           string
	DatabasePassword string
}
