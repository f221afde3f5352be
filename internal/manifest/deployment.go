package manifest

import (
	"strconv"

	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/util/intstr"
)

const (
	componentServer = "server"
	portName        = "http"
)

// RenderDeployment renders the Deployment running the status service.
func (r *Renderer) RenderDeployment() *appsv1.Deployment {
	var replicas int32 = 1
	labels := r.componentLabels(componentServer)

	container := corev1.Container{
		Name:  r.cfg.Name,
		Image: r.cfg.Image,
		Args:  []string{"serve"},
		Ports: []corev1.ContainerPort{
			{
				Name:          portName,
				ContainerPort: r.cfg.Port,
				Protocol:      corev1.ProtocolTCP,
			},
		},
		Env: []corev1.EnvVar{
			{Name: "PORT", Value: strconv.Itoa(int(r.cfg.Port))},
		},
		EnvFrom: []corev1.EnvFromSource{
			{
				ConfigMapRef: &corev1.ConfigMapEnvSource{
					LocalObjectReference: corev1.LocalObjectReference{Name: r.configMapName()},
				},
			},
		},
		LivenessProbe:  r.httpProbe("/health", 5),
		ReadinessProbe: r.httpProbe("/ready", 3),
	}

	return &appsv1.Deployment{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "apps/v1",
			Kind:       "Deployment",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      r.cfg.Name,
			Namespace: r.cfg.Namespace,
			Labels:    labels,
		},
		Spec: appsv1.DeploymentSpec{
			Replicas: &replicas,
			Selector: &metav1.LabelSelector{
				MatchLabels: labels,
			},
			Template: corev1.PodTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: labels,
				},
				Spec: corev1.PodSpec{
					Containers: []corev1.Container{container},
				},
			},
		},
	}
}

// RenderService renders a ClusterIP Service in front of the Deployment.
func (r *Renderer) RenderService() *corev1.Service {
	return &corev1.Service{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Service",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      r.cfg.Name,
			Namespace: r.cfg.Namespace,
			Labels:    r.Labels(),
		},
		Spec: corev1.ServiceSpec{
			Type:     corev1.ServiceTypeClusterIP,
			Selector: r.componentLabels(componentServer),
			Ports: []corev1.ServicePort{
				{
					Name:       portName,
					Port:       80,
					TargetPort: intstr.FromString(portName),
					Protocol:   corev1.ProtocolTCP,
				},
			},
		},
	}
}

func (r *Renderer) httpProbe(path string, initialDelay int32) *corev1.Probe {
	return &corev1.Probe{
		ProbeHandler: corev1.ProbeHandler{
			HTTPGet: &corev1.HTTPGetAction{
				Path: path,
				Port: intstr.FromInt32(r.cfg.Port),
			},
		},
		InitialDelaySeconds: initialDelay,
		PeriodSeconds:       10,
		TimeoutSeconds:      5,
		SuccessThreshold:    1,
		FailureThreshold:    3,
	}
}
