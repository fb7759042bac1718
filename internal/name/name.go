// Package name handles image reference and working-container naming.
package name

import (
	"fmt"

	gname "github.com/google/go-containerregistry/pkg/name"

	"github.com/hroncok/ansible-bender/internal/style"
	"github.com/hroncok/ansible-bender/pkg/logging"
)

const workingContainerSuffix = "-cont"

// WorkingContainer derives the working container name from the target image
// reference. The derivation is deterministic, so two concurrent builds of
// the same target would collide; that constraint is the caller's to honor.
func WorkingContainer(targetImage string) string {
	return targetImage + workingContainerSuffix
}

// ValidateReference checks that ref parses as an image reference.
func ValidateReference(ref string) error {
	_, err := gname.ParseReference(ref, gname.WeakValidation)
	return err
}

// TranslateRegistry rewrites the registry part of an image reference
// according to the configured registry mirrors. References without a
// matching mirror pass through unchanged.
func TranslateRegistry(name string, registryMirrors map[string]string, logger logging.Logger) (string, error) {
	if registryMirrors == nil {
		return name, nil
	}

	srcRef, err := gname.ParseReference(name, gname.WeakValidation)
	if err != nil {
		return "", err
	}

	srcContext := srcRef.Context()
	registryMirror, ok := getMirror(srcContext, registryMirrors)
	if !ok {
		return name, nil
	}

	refName := fmt.Sprintf("%s/%s:%s", registryMirror, srcContext.RepositoryStr(), srcRef.Identifier())
	_, err = gname.ParseReference(refName, gname.WeakValidation)
	if err != nil {
		return "", err
	}

	logger.Debugf("using mirror %s for %s", style.Symbol(refName), style.Symbol(name))
	return refName, nil
}

func getMirror(repo gname.Repository, registryMirrors map[string]string) (string, bool) {
	mirror, ok := registryMirrors["*"]
	if ok {
		return mirror, ok
	}

	mirror, ok = registryMirrors[repo.RegistryStr()]
	return mirror, ok
}
