package domain

var Tables = []interface{}{
	// Catalog
	&MLModel{},
	&MLMetric{},
}
