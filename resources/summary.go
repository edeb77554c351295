package resources

import (
	"context"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/richinex/waypoint/internal/logger"
)

// minDescriptionWords is the shortest looked-up description that is used
// instead of the built-in text.
const minDescriptionWords = 10

// Describer returns a short description of a topic.
type Describer interface {
	Describe(ctx context.Context, topic string) (string, error)
}

// SummaryFetcher returns a topic description and course suggestions.
type SummaryFetcher struct {
	describer Describer
	logger    *zap.Logger
}

// NewSummaryFetcher builds a fetcher. A nil describer always uses the
// built-in descriptions.
func NewSummaryFetcher(d Describer, l *zap.Logger) *SummaryFetcher {
	return &SummaryFetcher{describer: d, logger: logger.OrNop(l)}
}

// Fetch implements Fetcher.
func (f *SummaryFetcher) Fetch(ctx context.Context, topic string) Bundle {
	topic = CleanTopic(topic)
	return Bundle{
		Variant:   VariantSummary,
		TopicInfo: f.TopicInfo(ctx, topic),
		Courses:   Courses(topic),
	}
}

// TopicInfo prefers the looked-up description and falls back to the
// built-in one when the lookup fails or returns too little.
func (f *SummaryFetcher) TopicInfo(ctx context.Context, topic string) string {
	if f.describer == nil {
		return BackupTopicInfo(topic)
	}

	desc, err := f.describer.Describe(ctx, topic)
	if err != nil {
		f.logger.Warn("topic description lookup failed", zap.String("topic", topic), zap.Error(err))
		return BackupTopicInfo(topic)
	}
	if len(strings.Fields(desc)) < minDescriptionWords {
		return BackupTopicInfo(topic)
	}
	return desc
}

type topicBlurb struct {
	key  string
	text string
}

// commonTopics is checked in order; the first key contained in the topic
// (or containing it) wins.
var commonTopics = []topicBlurb{
	{"data visualization", "Data visualization is the graphical representation of data using charts, graphs, and maps. It helps make complex data more understandable and helps identify patterns and trends."},
	{"http", "HTTP (Hypertext Transfer Protocol) is the foundation of data communication on the web. It defines how messages are formatted and transmitted between web browsers and servers."},
	{"api", "An API (Application Programming Interface) is a set of rules that allows different software applications to communicate with each other. It enables integration between different services and systems."},
	{"rest", "REST (Representational State Transfer) is an architectural style for web services. It uses HTTP methods to interact with resources, making it the standard for building web APIs."},
	{"javascript", "JavaScript is a versatile programming language that makes web pages interactive and dynamic. It runs in the browser and allows you to create responsive user interfaces and handle complex client-side operations. It's essential for modern web development and can also be used for server-side programming."},
	{"python", "Python is a high-level programming language known for its simplicity and readability. It's widely used in web development, data science, and automation tasks. Its extensive library ecosystem makes it powerful for various applications."},
	{"react", "React is a popular JavaScript library for building user interfaces, developed by Facebook. It uses a component-based architecture that makes it easy to create reusable UI elements. React's virtual DOM ensures efficient rendering and optimal performance."},
	{"database", "A database is an organized collection of structured data designed for efficient access and management. It provides mechanisms for storing, retrieving, and updating information while maintaining data integrity and security."},
	{"git", "Git is a distributed version control system that tracks changes in source code during software development. It enables multiple developers to work together on projects and maintain different versions of code. Git's branching and merging capabilities make it essential for modern software development."},
	{"html", "HTML (HyperText Markup Language) is the standard markup language for creating web pages. It provides the basic structure of web pages using a system of tags and attributes. HTML works with CSS for styling and JavaScript for functionality."},
	{"css", "CSS (Cascading Style Sheets) is a style sheet language that controls the visual presentation of web pages. It handles layout, colors, fonts, spacing, and responsive design. CSS makes websites visually appealing and ensures consistent styling across different devices."},
	{"algorithms", "Algorithms are systematic procedures or rules for solving computational problems. They form the foundation of computer programming and determine how programs process data. Good algorithms are essential for writing efficient and scalable software."},
	{"data structures", "Data structures are specialized formats for organizing and storing data in computer memory. They provide efficient ways to access, insert, and delete data based on specific use cases. The right data structure can significantly impact a program's performance."},
	{"machine learning", "Machine learning is a branch of artificial intelligence that enables systems to learn from data and improve without explicit programming. It uses statistical techniques to allow computers to find patterns and make predictions. ML is crucial for applications like recommendation systems, image recognition, and natural language processing."},
	{"testing", "Software testing is the process of evaluating software to identify and fix defects or bugs. It ensures that code works as expected and meets requirements through various testing methods. Testing is crucial for maintaining software quality and preventing issues in production."},
	{"frontend", "Frontend development focuses on creating the user interface and user experience of web applications. It involves using HTML, CSS, and JavaScript to build responsive and interactive web pages. Frontend developers ensure that users can effectively interact with the application."},
	{"backend", "Backend development deals with server-side logic and database interactions in web applications. It handles data processing, authentication, and business logic that powers the frontend. Backend systems ensure data security and efficient application performance."},
	{"api testing", "API testing verifies the functionality, reliability, and security of application programming interfaces. It ensures that APIs correctly handle requests, responses, and edge cases. API testing is crucial for maintaining the quality of web services and integrations."},
	{"devops", "DevOps is a set of practices that combines software development (Dev) with IT operations (Ops). It emphasizes automation, continuous integration, and deployment to improve software delivery speed and quality. DevOps culture promotes collaboration between development and operations teams."},
	{"cloud computing", "Cloud computing provides on-demand access to computing resources over the internet. It enables scalable, flexible, and cost-effective hosting of applications and services. Cloud platforms like AWS, Azure, and Google Cloud have revolutionized modern software deployment."},
	{"security", "Security in software development focuses on protecting applications and data from unauthorized access and attacks. It involves implementing authentication, encryption, and secure coding practices. Security is crucial for maintaining user trust and protecting sensitive information."},
}

// BackupTopicInfo returns a built-in description for common topics and a
// generic sentence otherwise.
func BackupTopicInfo(topic string) string {
	lower := strings.ToLower(strings.TrimSpace(topic))
	if lower != "" {
		for _, b := range commonTopics {
			if strings.Contains(lower, b.key) || strings.Contains(b.key, lower) {
				return b.text
			}
		}
	}
	return topic + " is a concept in software development that helps developers build better applications. It contributes to code quality and efficiency. Understanding " + topic + " is valuable for writing more effective software."
}

var curatedCourses = map[string][]Course{
	"python": {
		{
			Title:       "Python for Everybody Specialization",
			Platform:    "Coursera",
			Instructor:  "Dr. Charles Severance",
			Link:        "https://www.coursera.org/specializations/python",
			Description: "Learn to Program and Analyze Data with Python",
		},
		{
			Title:       "Complete Python Bootcamp",
			Platform:    "Udemy",
			Instructor:  "Jose Portilla",
			Link:        "https://www.udemy.com/course/complete-python-bootcamp/",
			Description: "Learn Python like a Professional",
		},
	},
	"javascript": {
		{
			Title:       "JavaScript: From Fundamentals to Functional JS",
			Platform:    "Frontend Masters",
			Instructor:  "Bianca Gandolfo",
			Link:        "https://frontendmasters.com/courses/js-fundamentals-functional-v2/",
			Description: "Learn JavaScript fundamentals and functional programming concepts",
		},
		{
			Title:       "Modern JavaScript From The Beginning",
			Platform:    "Udemy",
			Instructor:  "Brad Traversy",
			Link:        "https://www.udemy.com/course/modern-javascript-from-the-beginning/",
			Description: "Learn modern JavaScript from the basics to advanced topics",
		},
	},
}

// Courses returns curated courses keyed by the alphanumeric lower-cased
// topic, or generic edX and Coursera searches.
func Courses(topic string) []Course {
	if c, ok := curatedCourses[courseKey(topic)]; ok {
		return append([]Course(nil), c...)
	}
	return []Course{
		{
			Title:       "Introduction to " + topic,
			Platform:    "edX",
			Instructor:  "Various Experts",
			Link:        "https://www.edx.org/search?q=" + queryEscape(topic),
			Description: "Learn " + topic + " from scratch",
		},
		{
			Title:       topic + " Fundamentals",
			Platform:    "Coursera",
			Instructor:  "Industry Experts",
			Link:        "https://www.coursera.org/search?query=" + queryEscape(topic),
			Description: "Master the basics of " + topic,
		},
	}
}

func courseKey(topic string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(topic) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var (
	_ Fetcher   = (*SummaryFetcher)(nil)
	_ Describer = (*WikipediaClient)(nil)
)
