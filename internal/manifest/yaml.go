package manifest

import (
	"fmt"
	"io"

	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"
)

// ToYAML writes every object as a YAML document separated by ---.
func (b *Bundle) ToYAML(w io.Writer) error {
	for i, obj := range b.AllObjects() {
		if i > 0 {
			if _, err := io.WriteString(w, "---\n"); err != nil {
				return err
			}
		}

		if err := writeObjectYAML(w, obj); err != nil {
			return err
		}
	}

	return nil
}

func writeObjectYAML(w io.Writer, obj runtime.Object) error {
	out, err := yaml.Marshal(obj)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", obj.GetObjectKind().GroupVersionKind().Kind, err)
	}

	_, err = w.Write(out)
	return err
}
