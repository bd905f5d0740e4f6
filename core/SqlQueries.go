package core

// SqlQuery is one named summary query run against the findings
// database by the json and xlsx reporters.
type SqlQuery struct {
	Name  string `yaml:"name"`
	Query string `yaml:"query"`
}

// SqlQueries is the query pack layout of data/queries.yaml.
type SqlQueries struct {
	Queries []SqlQuery `yaml:"queries"`
}
