package manifest

import (
	batchv1 "k8s.io/api/batch/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const componentTask = "task"

// RenderCronJob renders the CronJob that invokes the periodic task.
func (r *Renderer) RenderCronJob() *batchv1.CronJob {
	labels := r.componentLabels(componentTask)

	// Each run is fire-and-forget; a failed run waits for the next schedule.
	var backoffLimit int32

	container := corev1.Container{
		Name:  r.cfg.Name + "-task",
		Image: r.cfg.Image,
		Args:  []string{"run-task"},
		Env: []corev1.EnvVar{
			{
				Name: envAppEnv,
				ValueFrom: &corev1.EnvVarSource{
					ConfigMapKeyRef: &corev1.ConfigMapKeySelector{
						LocalObjectReference: corev1.LocalObjectReference{Name: r.configMapName()},
						Key:                  envAppEnv,
					},
				},
			},
			{
				Name: envDatabasePassword,
				ValueFrom: &corev1.EnvVarSource{
					SecretKeyRef: &corev1.SecretKeySelector{
						LocalObjectReference: corev1.LocalObjectReference{Name: r.secretName()},
						Key:                  envDatabasePassword,
					},
				},
			},
		},
	}

	return &batchv1.CronJob{
		TypeMeta: metav1.TypeMeta{
			APIVersion: "batch/v1",
			Kind:       "CronJob",
		},
		ObjectMeta: metav1.ObjectMeta{
			Name:      r.cfg.Name + "-task",
			Namespace: r.cfg.Namespace,
			Labels:    labels,
		},
		Spec: batchv1.CronJobSpec{
			Schedule:          r.cfg.Schedule,
			ConcurrencyPolicy: batchv1.ForbidConcurrent,
			JobTemplate: batchv1.JobTemplateSpec{
				ObjectMeta: metav1.ObjectMeta{
					Labels: labels,
				},
				Spec: batchv1.JobSpec{
					BackoffLimit: &backoffLimit,
					Template: corev1.PodTemplateSpec{
						ObjectMeta: metav1.ObjectMeta{
							Labels: labels,
						},
						Spec: corev1.PodSpec{
							RestartPolicy: corev1.RestartPolicyNever,
							Containers:    []corev1.Container{container},
						},
					},
				},
			},
		},
	}
}
