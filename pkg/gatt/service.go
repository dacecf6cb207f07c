package gatt

import (
	"embed"
	"fmt"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed catalog/services.yaml
var catalogFS embed.FS

// Service identifies a GATT service.
type Service struct {
	Name              string `yaml:"name" json:"name"`
	UUID              UUID   `yaml:"uuid" json:"uuid"`
	UniformIdentifier string `yaml:"identifier" json:"identifier"`
}

type serviceCatalog struct {
	Services []Service `yaml:"services"`
}

// serviceIndex is built once in init and never modified. It is not a
// variable initializer because decoding reaches baseUUID through reflection.
var serviceIndex services

func init() {
	serviceIndex = mustLoadServices()
}

type services struct {
	sorted       []Service
	byUUID       map[UUID]Service
	byIdentifier map[string]Service
}

func mustLoadServices() services {
	idx, err := loadServices("catalog/services.yaml")
	if err != nil {
		panic(err)
	}
	return idx
}

func loadServices(path string) (services, error) {
	data, err := catalogFS.ReadFile(path)
	if err != nil {
		return services{}, fmt.Errorf("read service catalog: %w", err)
	}
	return parseServices(data)
}

func parseServices(data []byte) (services, error) {
	var c serviceCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return services{}, fmt.Errorf("parse service catalog: %w", err)
	}

	idx := services{
		byUUID:       make(map[UUID]Service, len(c.Services)),
		byIdentifier: make(map[string]Service, len(c.Services)),
	}
	for _, s := range c.Services {
		if s.Name == "" || s.UUID == (UUID{}) {
			return services{}, fmt.Errorf("%w: service %q", ErrInvalidDefinition, s.Name)
		}
		if _, ok := idx.byUUID[s.UUID]; ok {
			return services{}, fmt.Errorf("%w: service %s", ErrDuplicateUUID, s.UUID)
		}
		idx.byUUID[s.UUID] = s
		if s.UniformIdentifier != "" {
			idx.byIdentifier[s.UniformIdentifier] = s
		}
		idx.sorted = append(idx.sorted, s)
	}
	slices.SortFunc(idx.sorted, func(a, b Service) int {
		return a.UUID.Compare(b.UUID)
	})
	return idx, nil
}

// Services returns every known service ordered by UUID.
func Services() []Service {
	return slices.Clone(serviceIndex.sorted)
}

// LookupService returns the service with the given UUID.
func LookupService(u UUID) (Service, bool) {
	s, ok := serviceIndex.byUUID[u]
	return s, ok
}

// LookupServiceByIdentifier returns the service with the given uniform type
// identifier, such as "org.bluetooth.service.bond_management".
func LookupServiceByIdentifier(id string) (Service, bool) {
	s, ok := serviceIndex.byIdentifier[id]
	return s, ok
}
