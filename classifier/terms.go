package classifier

// techTerms is the curated Tier-1 vocabulary, lower case.
var techTerms = []string{
	// Programming languages
	"programming", "python", "javascript", "java", "c++", "c#", "ruby", "php", "swift", "kotlin", "rust", "go",

	// Web development
	"web development", "frontend", "backend", "fullstack", "html", "css", "react", "angular", "vue", "node.js",
	"django", "flask", "spring boot", "asp.net", "web design", "responsive design",

	// Data
	"data", "data science", "data engineering", "data analyst", "data analytics", "business analyst", "business intelligence",
	"bi", "power bi", "tableau", "data visualization", "etl", "sql", "mysql", "postgresql", "mongodb", "database",
	"big data", "hadoop", "spark", "data warehouse", "data modeling",

	// AI/ML
	"machine learning", "artificial intelligence", "ai", "deep learning", "nlp", "computer vision",
	"neural networks", "tensorflow", "pytorch", "scikit-learn", "ml ops",

	// Cloud and DevOps
	"devops", "cloud computing", "aws", "azure", "gcp", "docker", "kubernetes", "jenkins", "ci/cd",
	"terraform", "ansible", "cloud architect", "site reliability", "sre", "system admin",

	// Security
	"cybersecurity", "security", "ethical hacking", "penetration testing", "pen testing", "network security",
	"security analyst", "security engineer", "information security", "infosec",

	// Mobile
	"mobile development", "android", "ios", "flutter", "react native", "mobile app", "app development",

	// Roles and practices
	"software engineer", "software developer", "software architect", "solution architect",
	"quality assurance", "qa engineer", "test automation", "automation engineer",
	"technical project manager", "scrum master", "agile", "product owner",
	"ui/ux", "user interface", "user experience", "product design", "system design",
	"blockchain", "web3", "defi", "smart contracts", "cryptocurrency",
	"game development", "unity", "unreal engine",
	"embedded systems", "iot", "internet of things", "robotics",
	"technical lead", "tech lead", "engineering manager",
	"networking", "network engineer", "system administrator",
	"linux", "unix", "windows server", "shell scripting",
	"api", "rest api", "graphql", "microservices", "distributed systems",
}
