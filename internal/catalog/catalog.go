package catalog

import (
	"fmt"
	"strings"
)

// Entry is one trigger in the catalog. An entry matches when every
// Match term occurs in the normalized question and no Exclude term
// does. Entries are evaluated in order and the first match wins, so
// the position of an entry in the table is its precedence.
type Entry struct {
	Match   []string
	Exclude []string
	Reply   string
}

func (e Entry) Matches(question string) bool {
	for _, term := range e.Match {
		if !strings.Contains(question, term) {
			return false
		}
	}
	for _, term := range e.Exclude {
		if strings.Contains(question, term) {
			return false
		}
	}
	return true
}

// Answer matches the question against the catalog and returns the
// first matching description. When nothing matches it returns a
// prompt listing representative categories, echoing the question.
func Answer(question string) string {
	normalized := strings.ToLower(strings.TrimSpace(question))
	for _, e := range entries {
		if e.Matches(normalized) {
			return e.Reply
		}
	}
	return fmt.Sprintf("I couldn't match '%s' to a service I know about. "+
		"I can describe compute (Lambda, EC2, ECS, EKS), storage (S3), databases (DynamoDB, RDS), "+
		"networking (VPC, CloudFront, Route 53, API Gateway), messaging (SNS, SQS), "+
		"security (IAM), monitoring (CloudWatch) and AI services (Bedrock, Lex). "+
		"Could you ask about a specific service?", question)
}

// entries is ordered: more specific triggers come before the services
// they would otherwise shadow.
var entries = []Entry{
	{
		Match:   []string{"lambda"},
		Exclude: []string{"edge"},
		Reply: "AWS Lambda is a serverless compute service that runs your code in response to events " +
			"and automatically manages the underlying compute resources. You pay only for the compute " +
			"time you consume, billed in millisecond increments. Lambda supports Node.js, Python, Java, " +
			"Go, Ruby and .NET runtimes, scales automatically from a few requests per day to thousands " +
			"per second, and integrates natively with over 200 AWS services and SaaS applications.",
	},
	{
		Match: []string{"ec2"},
		Reply: "Amazon EC2 (Elastic Compute Cloud) provides resizable virtual servers in the cloud. " +
			"You choose an instance type matched to your workload's CPU, memory, storage and networking " +
			"needs, and pay for capacity by the second. EC2 offers Spot Instances for fault-tolerant " +
			"workloads at up to 90% discount, Auto Scaling groups to match capacity to demand, and " +
			"placement options from shared hardware to dedicated physical hosts.",
	},
	{
		Match:   []string{"s3"},
		Exclude: []string{"glacier"},
		Reply: "Amazon S3 (Simple Storage Service) is object storage built to store and retrieve any " +
			"amount of data from anywhere. It is designed for 99.999999999% (11 nines) of durability, " +
			"offers storage classes ranging from frequently accessed to deep archive, and supports " +
			"lifecycle policies, versioning, replication and fine-grained access control. Objects live " +
			"in buckets and are addressed by a simple key.",
	},
	{
		Match: []string{"glacier"},
		Reply: "Amazon S3 Glacier storage classes are purpose-built for data archiving. Glacier Instant " +
			"Retrieval serves rarely accessed data in milliseconds, Glacier Flexible Retrieval restores " +
			"archives in minutes to hours, and Glacier Deep Archive is the lowest-cost storage in the " +
			"cloud for data retained seven to ten years or longer.",
	},
	{
		Match: []string{"dynamodb"},
		Reply: "Amazon DynamoDB is a fully managed, serverless key-value and document database that " +
			"delivers single-digit millisecond performance at any scale. It offers built-in security, " +
			"continuous backups, automated multi-Region replication via global tables, an in-memory " +
			"cache (DAX), and on-demand capacity so you never provision servers or manage throughput " +
			"for spiky workloads.",
	},
	{
		Match: []string{"rds"},
		Reply: "Amazon RDS (Relational Database Service) makes it easy to set up, operate and scale a " +
			"relational database in the cloud. It manages backups, patching, failure detection and " +
			"repair for MySQL, PostgreSQL, MariaDB, Oracle and SQL Server engines, and offers Multi-AZ " +
			"deployments for high availability with automatic failover.",
	},
	{
		Match: []string{"aurora"},
		Reply: "Amazon Aurora is a MySQL- and PostgreSQL-compatible relational database built for the " +
			"cloud, delivering up to five times the throughput of standard MySQL. Storage automatically " +
			"grows in 10 GB increments up to 128 TB, replicates six ways across three Availability " +
			"Zones, and Aurora Serverless scales capacity up and down based on application demand.",
	},
	{
		Match: []string{"vpc"},
		Reply: "Amazon VPC (Virtual Private Cloud) lets you provision a logically isolated section of " +
			"the AWS cloud where you launch resources in a virtual network you define. You control the " +
			"IP address range, subnets, route tables and gateways, and secure traffic with security " +
			"groups and network ACLs. VPC peering and Transit Gateway connect networks together.",
	},
	{
		Match: []string{"iam"},
		Reply: "AWS IAM (Identity and Access Management) controls who is authenticated and authorized " +
			"to use resources in your account. You manage users, groups, roles and policies; grant " +
			"least-privilege permissions; require multi-factor authentication; and use roles to give " +
			"applications temporary credentials instead of long-lived access keys.",
	},
	{
		Match: []string{"cloudwatch"},
		Reply: "Amazon CloudWatch is a monitoring and observability service. It collects metrics, logs " +
			"and events from AWS resources and your own applications, lets you set alarms that trigger " +
			"notifications or automated actions, build dashboards, and query logs with CloudWatch Logs " +
			"Insights to troubleshoot operational issues.",
	},
	{
		Match: []string{"sns"},
		Reply: "Amazon SNS (Simple Notification Service) is a fully managed publish/subscribe messaging " +
			"service. Publishers send messages to topics, and SNS fans them out to subscribers such as " +
			"SQS queues, Lambda functions, HTTP endpoints, email, SMS and mobile push. FIFO topics " +
			"preserve ordering and deduplicate messages for exactly-once delivery.",
	},
	{
		Match: []string{"sqs"},
		Reply: "Amazon SQS (Simple Queue Service) is a fully managed message queuing service that " +
			"decouples and scales microservices and distributed systems. Standard queues offer nearly " +
			"unlimited throughput with at-least-once delivery, while FIFO queues guarantee ordering and " +
			"exactly-once processing. Messages are retained up to fourteen days.",
	},
	{
		Match: []string{"api", "gateway"},
		Reply: "Amazon API Gateway is a fully managed service for creating, publishing and securing " +
			"REST, HTTP and WebSocket APIs at any scale. It handles traffic management, authorization, " +
			"throttling and monitoring, and integrates directly with Lambda to build fully serverless " +
			"backends.",
	},
	{
		Match:   []string{"ecs"},
		Exclude: []string{"eks"},
		Reply: "Amazon ECS (Elastic Container Service) is a fully managed container orchestration " +
			"service for deploying and scaling containerized applications. With the Fargate launch " +
			"type you run containers without managing servers at all; with the EC2 launch type you " +
			"control the underlying instances.",
	},
	{
		Match: []string{"eks"},
		Reply: "Amazon EKS (Elastic Kubernetes Service) runs upstream Kubernetes control planes across " +
			"multiple Availability Zones for you, handling patching, upgrades and scaling. Worker nodes " +
			"can run on EC2, on Fargate for serverless pods, or on-premises with EKS Anywhere.",
	},
	{
		Match: []string{"cloudfront"},
		Reply: "Amazon CloudFront is a content delivery network that securely delivers data, videos, " +
			"applications and APIs with low latency from edge locations worldwide. It integrates with " +
			"S3, EC2 and Shield for DDoS protection, and Lambda@Edge lets you run code closer to your " +
			"users to customize content.",
	},
	{
		Match: []string{"route"},
		Reply: "Amazon Route 53 is a highly available and scalable DNS web service. It routes end users " +
			"to applications using routing policies such as latency-based, geolocation, weighted and " +
			"failover routing, performs health checks on endpoints, and also offers domain registration.",
	},
	{
		Match: []string{"bedrock"},
		Reply: "Amazon Bedrock is a fully managed service offering foundation models from multiple " +
			"providers through a single API. It supports retrieval-augmented generation with Knowledge " +
			"Bases, agents that execute multi-step tasks, and private model customization, all without " +
			"managing any infrastructure.",
	},
	{
		Match: []string{"lex"},
		Reply: "Amazon Lex is a service for building conversational interfaces using voice and text. " +
			"It provides the automatic speech recognition and natural language understanding that power " +
			"Alexa, letting you define intents, slots and fulfillment hooks to build chatbots that " +
			"integrate with Lambda and contact-center services.",
	},
	{
		Match: []string{"pricing"},
		Reply: "AWS pricing follows a pay-as-you-go model: you pay only for the individual services you " +
			"need, for as long as you use them, with no long-term contracts required. Savings Plans and " +
			"Reserved Instances reduce costs for steady-state workloads, Spot pricing discounts spare " +
			"capacity, and the Free Tier covers many services for new accounts.",
	},
	{
		Match: []string{"support"},
		Reply: "AWS Support offers plans from Basic (account and billing help) through Developer, " +
			"Business and Enterprise, which adds a designated Technical Account Manager, concierge " +
			"support and response times as fast as 15 minutes for business-critical issues.",
	},
}
