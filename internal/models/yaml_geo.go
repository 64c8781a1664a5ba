package models

// GeoPoint goes through a flow-style slice in yaml files
type geoPointYAML struct {
	Type        string    `yaml:"type"`
	Coordinates []float64 `yaml:"coordinates,flow"`
}

// MarshalYAML implements yaml.Marshaler
func (p GeoPoint) MarshalYAML() (interface{}, error) {
	return geoPointYAML{Type: p.Type, Coordinates: p.Coordinates[:]}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler in its function form
func (p *GeoPoint) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw geoPointYAML
	if err := unmarshal(&raw); err != nil {
		return err
	}
	p.Type = raw.Type
	p.Coordinates = [2]float64{}
	copy(p.Coordinates[:], raw.Coordinates)
	return nil
}
