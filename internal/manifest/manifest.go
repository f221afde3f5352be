// Package manifest renders the Kubernetes objects that deploy the status
// service and schedule the periodic task.
package manifest

import (
	"errors"

	appsv1 "k8s.io/api/apps/v1"
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	"k8s.io/apimachinery/pkg/runtime"

	"github.com/mtlprog/statuscron/internal/config"
)

// ErrImageRequired is returned when no container image is configured.
var ErrImageRequired = errors.New("container image is required")

const (
	// Environment keys shared between the ConfigMap, the Secret and the containers.
	envAppEnv           = "APP_ENV"
	envDatabasePassword = "DATABASE_PASSWORD"

	defaultPort = 8000
)

// Renderer builds Kubernetes objects from a manifest config.
type Renderer struct {
	cfg config.Manifest
}

// Bundle holds every rendered object.
type Bundle struct {
	ConfigMap  *corev1.ConfigMap
	Secret     *corev1.Secret
	Deployment *appsv1.Deployment
	Service    *corev1.Service
	CronJob    *batchv1.CronJob
}

// AllObjects returns the objects in apply order.
func (b *Bundle) AllObjects() []runtime.Object {
	return []runtime.Object{b.ConfigMap, b.Secret, b.Deployment, b.Service, b.CronJob}
}

// New creates a Renderer, filling unset name, port and schedule with defaults.
// AppEnv and DatabasePassword are rendered as given, empty included.
func New(cfg config.Manifest) *Renderer {
	if cfg.Name == "" {
		cfg.Name = config.DefaultName
	}
	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.Schedule == "" {
		cfg.Schedule = config.DefaultSchedule
	}
	return &Renderer{cfg: cfg}
}

// Render builds the full bundle.
func (r *Renderer) Render() (*Bundle, error) {
	if r.cfg.Image == "" {
		return nil, ErrImageRequired
	}

	return &Bundle{
		ConfigMap:  r.RenderConfigMap(),
		Secret:     r.RenderSecret(),
		Deployment: r.RenderDeployment(),
		Service:    r.RenderService(),
		CronJob:    r.RenderCronJob(),
	}, nil
}

// Labels returns the labels shared by all objects.
func (r *Renderer) Labels() map[string]string {
	return map[string]string{
		"app.kubernetes.io/name":       r.cfg.Name,
		"app.kubernetes.io/managed-by": "statuscron",
	}
}

func (r *Renderer) componentLabels(component string) map[string]string {
	labels := r.Labels()
	labels["app.kubernetes.io/component"] = component
	return labels
}

func (r *Renderer) configMapName() string {
	return r.cfg.Name + "-config"
}

func (r *Renderer) secretName() string {
	return r.cfg.Name + "-secret"
}
