package content

// GROQ projections, one canonical shape per document type. Listing
// projections leave out the rich content body.
const (
	articleFields = `
    _id,
    title,
    "slug": slug.current,
    publishedAt,
    description,
    readingTime,
    mainImage,
    mainCategory,
    tags,
    _createdAt`

	workFields = `
    _id,
    title,
    "slug": slug.current,
    overview,
    image,
    technologies,
    projectType,
    mainCategory,
    tags,
    githubLink,
    liveLink,
    publishedAt,
    _createdAt`
)

var (
	listArticlesQuery = `*[_type == "blog"] {` + articleFields + `
  } | order(publishedAt desc)`

	articleBySlugQuery = `*[_type == "blog" && slug.current == $slug][0] {` + articleFields + `,
    content
  }`

	listWorksQuery = `*[_type == "project"] {` + workFields + `
  } | order(_createdAt desc)`

	workBySlugQuery = `*[_type == "project" && slug.current == $slug][0] {` + workFields + `,
    description,
    content
  }`
)
