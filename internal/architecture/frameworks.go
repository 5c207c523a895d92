package architecture

// FrameworkHint names a framework inferred from file and directory
// naming, grouped by concern.
type FrameworkHint struct {
	Category string `json:"category"`
	Name     string `json:"name"`
}

var frameworkIndicators = []struct {
	category   string
	name       string
	indicators []string
}{
	{"frontend", "Next.js", []string{"next.config", "next-env"}},
	{"frontend", "Nuxt.js", []string{"nuxt.config"}},
	{"frontend", "Vue.js", []string{"vue.config", ".vue"}},
	{"frontend", "Angular", []string{"angular.json"}},
	{"frontend", "React", []string{".jsx", ".tsx"}},
	{"frontend", "Svelte", []string{"svelte.config"}},
	{"backend", "Express.js", []string{"express"}},
	{"backend", "FastAPI", []string{"fastapi"}},
	{"backend", "Django", []string{"django", "manage.py"}},
	{"backend", "Flask", []string{"flask"}},
	{"backend", "NestJS", []string{"nestjs", "nest-cli"}},
	{"backend", "Spring Boot", []string{"application.properties", "spring"}},
	{"database", "Prisma", []string{"prisma"}},
	{"database", "TypeORM", []string{"typeorm"}},
	{"database", "Sequelize", []string{"sequelize"}},
	{"database", "Mongoose", []string{"mongoose"}},
	{"database", "SQLAlchemy", []string{"sqlalchemy"}},
	{"testing", "Jest", []string{"jest.config", "jest"}},
	{"testing", "Pytest", []string{"pytest", "conftest"}},
	{"testing", "Vitest", []string{"vitest"}},
	{"testing", "Cypress", []string{"cypress"}},
	{"deployment", "Docker", []string{"dockerfile", "docker-compose", ".dockerignore"}},
	{"deployment", "Kubernetes", []string{"kubernetes", "k8s"}},
	{"deployment", "Terraform", []string{"terraform", ".tf"}},
	{"deployment", "Vercel", []string{"vercel.json"}},
	{"deployment", "Netlify", []string{"netlify"}},
}

// detectFrameworks walks the indicator table in declaration order so
// the hint list is stable run to run.
func detectFrameworks(s *Signals) []FrameworkHint {
	var hints []FrameworkHint
	for _, fi := range frameworkIndicators {
		if s.HasAny(fi.indicators...) {
			hints = append(hints, FrameworkHint{Category: fi.category, Name: fi.name})
		}
	}
	return hints
}
