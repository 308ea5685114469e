package textgen

// DefaultSeparator is placed between the two halves of a Composite when no
// separator is given.
const DefaultSeparator = " "

// Composite joins the output of two generators, for example a given name and
// a family name. The two sides share nothing; each uses its own model and
// random source.
type Composite struct {
	first     Generator
	second    Generator
	separator string
}

// NewComposite returns a Composite of first and second. An empty separator
// selects DefaultSeparator; use SetSeparator to join with nothing at all.
func NewComposite(first, second Generator, separator string) *Composite {
	if separator == "" {
		separator = DefaultSeparator
	}
	return &Composite{first: first, second: second, separator: separator}
}

// SetSeparator changes the string placed between the two halves.
func (c *Composite) SetSeparator(separator string) {
	c.separator = separator
}

// Separator returns the current separator.
func (c *Composite) Separator() string {
	return c.separator
}

// GenerateOne returns first + separator + second using each side's own
// configuration.
func (c *Composite) GenerateOne() (string, error) {
	return c.join(c.first.GenerateOne, c.second.GenerateOne)
}

// Generate applies startsWith to the first half, endsWith to the second half,
// and the length bounds to each half separately.
func (c *Composite) Generate(minLength, maxLength int, startsWith, endsWith string) (string, error) {
	return c.join(
		func() (string, error) { return c.first.Generate(minLength, maxLength, startsWith, "") },
		func() (string, error) { return c.second.Generate(minLength, maxLength, "", endsWith) },
	)
}

// GenerateSides constrains each half with its own filter. Zero fields fall
// back to that side's configuration.
func (c *Composite) GenerateSides(first, second Filter) (string, error) {
	return c.join(
		func() (string, error) {
			return c.first.Generate(first.MinLength, first.MaxLength, first.StartsWith, first.EndsWith)
		},
		func() (string, error) {
			return c.second.Generate(second.MinLength, second.MaxLength, second.StartsWith, second.EndsWith)
		},
	)
}

func (c *Composite) join(first, second func() (string, error)) (string, error) {
	a, err := first()
	if err != nil {
		return "", err
	}
	b, err := second()
	if err != nil {
		return "", err
	}
	return a + c.separator + b, nil
}
