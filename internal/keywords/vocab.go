package keywords

// stopwordList is a general English stopword list
var stopwordList = []string{
	"a", "about", "above", "across", "after", "afterwards", "again", "against", "all", "almost",
	"alone", "along", "already", "also", "although", "always", "am", "among", "amongst", "amount",
	"an", "and", "another", "any", "anyhow", "anyone", "anything", "anyway", "anywhere", "are",
	"around", "as", "at", "back", "be", "became", "because", "become", "becomes", "becoming",
	"been", "before", "beforehand", "behind", "being", "below", "beside", "besides", "between",
	"beyond", "both", "bottom", "but", "by", "ca", "call", "can", "cannot", "could", "did", "do",
	"does", "doing", "done", "down", "due", "during", "each", "eight", "either", "eleven", "else",
	"elsewhere", "empty", "enough", "even", "ever", "every", "everyone", "everything", "everywhere",
	"except", "few", "fifteen", "fifty", "first", "five", "for", "former", "formerly", "forty",
	"four", "from", "front", "full", "further", "get", "give", "go", "had", "has", "have", "he",
	"hence", "her", "here", "hereafter", "hereby", "herein", "hereupon", "hers", "herself", "him",
	"himself", "his", "how", "however", "hundred", "i", "if", "in", "indeed", "into", "is", "it",
	"its", "itself", "just", "keep", "last", "latter", "latterly", "least", "less", "made", "make",
	"many", "may", "me", "meanwhile", "might", "mine", "more", "moreover", "most", "mostly", "move",
	"much", "must", "my", "myself", "name", "namely", "neither", "never", "nevertheless", "next",
	"nine", "no", "nobody", "none", "noone", "nor", "not", "nothing", "now", "nowhere", "of", "off",
	"often", "on", "once", "one", "only", "onto", "or", "other", "others", "otherwise", "our",
	"ours", "ourselves", "out", "over", "own", "part", "per", "perhaps", "please", "put", "quite",
	"rather", "re", "really", "regarding", "same", "say", "see", "seem", "seemed", "seeming",
	"seems", "serious", "several", "she", "should", "show", "side", "since", "six", "sixty", "so",
	"some", "somehow", "someone", "something", "sometime", "sometimes", "somewhere", "still",
	"such", "take", "ten", "than", "that", "the", "their", "them", "themselves", "then", "thence",
	"there", "thereafter", "thereby", "therefore", "therein", "thereupon", "these", "they",
	"third", "this", "those", "though", "three", "through", "throughout", "thru", "thus", "to",
	"together", "too", "top", "toward", "towards", "twelve", "twenty", "two", "under", "unless",
	"until", "up", "upon", "us", "used", "using", "various", "very", "via", "was", "we", "well",
	"were", "what", "whatever", "when", "whence", "whenever", "where", "whereafter", "whereas",
	"whereby", "wherein", "whereupon", "wherever", "whether", "which", "while", "whither", "who",
	"whoever", "whole", "whom", "whose", "why", "will", "with", "within", "without", "would",
	"yet", "you", "your", "yours", "yourself", "yourselves",
}

// commonWordList holds job posting and resume filler that is never a keyword
var commonWordList = []string{
	// grammar
	"the", "a", "an", "and", "or", "but", "in", "on", "at", "to", "for",
	"of", "with", "by", "from", "up", "about", "into", "through", "during",
	"it", "its", "this", "that", "these", "those", "they", "their", "our",
	"your", "we", "us", "you", "he", "she", "him", "her",
	"is", "are", "was", "were", "be", "been", "being", "have", "has", "had",
	"do", "does", "did", "will", "would", "should", "could", "may", "might",
	"can", "must", "shall",
	"all", "some", "any", "many", "much", "more", "most", "less", "other",
	"such", "own", "same", "so", "than", "too", "very", "just", "where",
	"when", "how", "what", "who", "which", "there", "here", "then", "now",
	"also", "both", "each", "either", "every", "neither", "nor", "not",
	"only", "whether", "as", "if", "because", "since", "while",
	// posting boilerplate
	"role", "position", "candidate", "candidates", "job", "work", "working",
	"team", "teams", "company", "business", "organization", "department",
	"responsibilities", "requirements", "qualifications", "preferred",
	"required", "looking", "seeking", "hiring", "join", "help", "support",
	"across", "within", "between", "among", "including", "based", "related",
	"one", "two", "three", "four", "five", "years", "year", "months", "days",
	"large", "small", "big", "new", "old", "high", "low", "good", "best",
	"strong", "able", "well",
	"type", "types", "title", "titles", "experience", "skilled", "skills",
	"skill", "knowledge", "ability", "understanding", "familiarity",
	"engineer", "engineers", "engineering", "developer", "developers",
	"specialist", "manager", "lead", "senior", "junior", "intern",
	"location", "remote", "onsite", "hybrid", "office", "site",
	"india", "delhi", "bangalore", "mumbai", "pune", "hyderabad",
	"usa", "california", "texas", "york", "francisco",
	"time", "full", "part", "contract", "permanent", "temporary",
	"problem", "problems", "solution", "solutions", "issue", "issues",
	"communicate", "communicating", "communication", "collaborate",
	"collaborating", "collaboration", "manage", "managing",
	"database", "databases", "monitoring", "deployment", "design",
	"enjoy", "like", "love", "passion", "passionate", "excited",
	"measurable", "measure", "metrics", "kpi", "kpis",
	"technology", "technologies", "tool", "tools", "system", "systems",
	"platform", "platforms", "software", "application", "applications",
	"service", "services", "product", "products",
	// resume filler
	"responsible", "duties", "tasks", "activities",
	"include", "includes", "various", "multiple",
	"several", "different", "relevant", "appropriate", "necessary",
	"using", "used", "use", "build", "built", "create", "created",
	"develop", "developed", "implement", "implemented", "maintain",
	"write", "writing", "read", "reading", "analyze", "analyzed",
}

// technicalPatternList holds short technical tokens kept regardless of length
var technicalPatternList = []string{
	"ai", "ml", "ci", "cd", "ui", "ux", "api", "aws", "gcp", "sql", "nlp",
	"rnn", "cnn", "gpu", "cpu", "ide", "cli", "etl", "iot", "sla", "sdk",
	"c++", "c#", "r", "go", "ios", "npm", "git", "ssh", "tcp", "udp", "http",
	"rest", "soap", "json", "xml", "yaml", "html", "css", "sqs", "sns", "ecs",
	"eks", "rds", "ec2", "s3", "vpc", "iam", "arm", "x86", "llm", "rag", "ocr",
}

// keepTechTermList holds common technologies that must survive stopword filtering
var keepTechTermList = []string{
	"python", "java", "javascript", "typescript", "react", "angular", "vue",
	"node", "nodejs", "express", "django", "flask", "fastapi", "spring",
	"docker", "kubernetes", "jenkins", "gitlab", "github", "terraform",
	"ansible", "postgres", "postgresql", "mysql", "mongodb", "redis",
	"elasticsearch", "kafka", "rabbitmq", "spark", "hadoop", "airflow",
	"pytorch", "tensorflow", "keras", "scikit", "pandas", "numpy",
	"linux", "unix", "windows", "macos", "ubuntu", "debian", "centos",
	"azure", "gcp", "heroku", "vercel", "netlify", "digitalocean",
	"graphql", "grpc", "websocket", "oauth", "jwt", "saml",
	"microservices", "serverless", "devops", "mlops", "cicd",
	"agile", "scrum", "kanban", "jira", "confluence",
	"tableau", "powerbi", "looker", "grafana", "prometheus",
	"nginx", "apache", "tomcat", "gunicorn", "uvicorn",
	"pytest", "junit", "selenium", "cypress", "jest",
	"vscode", "pycharm", "intellij", "eclipse", "vim",
	"bash", "shell", "powershell", "cmd",
	"frontend", "backend", "fullstack", "mobile", "web",
	"android", "kotlin", "swift", "flutter", "reactnative",
}

// technicalKeywordList is the reference database of known technologies
var technicalKeywordList = []string{
	// languages
	"python", "java", "javascript", "typescript", "c++", "c#", "go", "rust",
	"ruby", "php", "swift", "kotlin", "scala", "r", "matlab", "perl",
	// web frameworks
	"react", "angular", "vue", "svelte", "nextjs", "nuxt", "gatsby",
	"django", "flask", "fastapi", "spring", "express", "nestjs",
	"rails", "laravel", "aspnet", "blazor",
	// mobile
	"android", "ios", "flutter", "react-native", "xamarin", "ionic",
	// databases
	"postgresql", "mysql", "mongodb", "redis", "elasticsearch",
	"cassandra", "dynamodb", "neo4j", "oracle", "sqlserver",
	"sqlite", "mariadb", "couchdb", "influxdb",
	// cloud
	"aws", "azure", "gcp", "heroku", "digitalocean", "vercel",
	"netlify", "cloudflare", "linode", "vultr",
	// devops
	"docker", "kubernetes", "jenkins", "gitlab", "github",
	"terraform", "ansible", "chef", "puppet", "vagrant",
	"circleci", "travis", "bamboo", "teamcity",
	// data and ml
	"pytorch", "tensorflow", "keras", "scikit-learn", "pandas",
	"numpy", "scipy", "spark", "hadoop", "airflow", "kafka",
	"flink", "storm", "databricks", "mlflow", "kubeflow",
	// testing
	"pytest", "junit", "testng", "selenium", "cypress",
	"jest", "mocha", "jasmine", "cucumber", "postman",
	// monitoring
	"grafana", "prometheus", "datadog", "newrelic", "splunk",
	"elk", "kibana", "logstash", "sentry", "pagerduty",
	// queues
	"rabbitmq", "activemq", "zeromq", "nats", "pulsar",
	// web servers
	"nginx", "apache", "tomcat", "gunicorn", "uvicorn", "iis",
	// version control
	"git", "svn", "mercurial", "perforce",
	// api
	"rest", "graphql", "grpc", "soap", "websocket",
	// auth
	"oauth", "jwt", "saml", "ldap", "ssl", "tls",
	// operating systems
	"linux", "unix", "windows", "macos", "ubuntu", "debian",
	"centos", "redhat", "fedora", "alpine",
	// methodologies
	"agile", "scrum", "kanban", "devops", "mlops", "cicd",
	// editors
	"vscode", "pycharm", "intellij", "eclipse", "vim",
	"emacs", "sublime", "atom", "webstorm",
	// concepts
	"microservices", "serverless", "containerization", "orchestration",
	"frontend", "backend", "fullstack", "api", "sdk", "cli",
	// short forms
	"ai", "ml", "nlp", "cv", "ci", "cd", "ui", "ux",
	"sql", "nosql", "html", "css", "json", "xml", "yaml",
	"http", "https", "tcp", "udp", "ssh", "ftp",
	"aws-ec2", "s3", "lambda", "rds", "vpc", "iam", "eks", "ecs",
	"etl", "iot", "rnn", "cnn", "gpu", "cpu", "ram",
}

// compoundTerms are matched as substrings in this order
var compoundTerms = []string{
	"machine learning", "deep learning", "data science", "web development",
	"mobile development", "cloud computing", "data engineering",
	"software engineering", "full stack", "front end", "back end",
	"natural language processing", "computer vision", "data analysis",
	"business intelligence", "version control", "continuous integration",
	"continuous deployment", "test driven development", "object oriented",
	"functional programming", "responsive design", "api development",
	"database design", "system design", "code review", "unit testing",
	"integration testing", "performance optimization", "load balancing",
	"message queue", "service mesh", "infrastructure as code",
	"configuration management", "container orchestration",
}

// technicalSuffixes mark tokens like "nextjs" or "mysql" as technical
var technicalSuffixes = []string{"js", "py", "sql", "db", "api", "sdk", "cli", "ops"}

// technicalAnchors are the reference phrases ambiguous candidates are compared against
var technicalAnchors = []string{
	"python java programming",
	"docker kubernetes cloud",
	"react angular vue framework",
	"postgresql mysql database",
	"tensorflow pytorch machine learning",
	"aws azure gcp platform",
	"git jenkins devops",
	"api rest graphql",
	"agile scrum methodology",
}

var (
	stopwords         = toSet(stopwordList, commonWordList)
	technicalPatterns = toSet(technicalPatternList)
	keepTechTerms     = toSet(keepTechTermList)
	technicalKeywords = toSet(technicalKeywordList)
	compoundSet       = toSet(compoundTerms)
	// allowlist survives stopword filtering
	allowlist = toSet(technicalPatternList, technicalKeywordList, keepTechTermList)
)

func toSet(lists ...[]string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, list := range lists {
		for _, w := range list {
			set[w] = struct{}{}
		}
	}
	return set
}

func has(set map[string]struct{}, w string) bool {
	_, ok := set[w]
	return ok
}
