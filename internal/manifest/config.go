package manifest

import (
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// RenderConfigMap renders the ConfigMap carrying APP_ENV.
func (r *Renderer) RenderConfigMap() *corev1.ConfigMap {
	return &corev1.ConfigMap{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "ConfigMap",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      r.configMapName(),
			Namespace: r.cfg.Namespace,
			Labels:    r.Labels(),
		},
		Data: map[string]string{
			envAppEnv: r.cfg.AppEnv,
		},
	}
}

// RenderSecret renders the Secret carrying DATABASE_PASSWORD.
func (r *Renderer) RenderSecret() *corev1.Secret {
	return &corev1.Secret{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "v1",
			Kind:       "Secret",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      r.secretName(),
			Namespace: r.cfg.Namespace,
			Labels:    r.Labels(),
		},
		Type: corev1.SecretTypeOpaque,
		StringData: map[string]string{
			envDatabasePassword: r.cfg.DatabasePassword,
		},
	}
}
