package domain

var Tables = []interface{}{
	&Product{},
	&Supplier{},
	&Order{},
}
