package handlers

import (
	"html/template"
	"net/http"
	"os"
)

// DocHandler serves the static legal pages the app stores link to.
type DocHandler struct{}

func NewDocHandler() *DocHandler {
	return &DocHandler{}
}

func (h *DocHandler) ServePrivacyPolicy(w http.ResponseWriter, r *http.Request) {
	const privacyHtml = `
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>Privacy Policy - Quitter</title>
		<style>
			body {
				font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif;
				line-height: 1.6;
				color: #333;
				max-width: 800px;
				margin: 0 auto;
				padding: 20px;
				background-color: #f9f9f9;
			}
			.container {
				background-color: #fff;
				padding: 40px;
				border-radius: 8px;
				box-shadow: 0 2px 4px rgba(0,0,0,0.1);
			}
			h1 { color: #2c3e50; border-bottom: 2px solid #eee; padding-bottom: 10px; }
			h2 { color: #34495e; margin-top: 30px; }
			ul { margin-bottom: 20px; }
			li { margin-bottom: 8px; }
			.date { color: #7f8c8d; font-style: italic; margin-bottom: 20px; }
			.contact { background-color: #e8f4f8; padding: 15px; border-radius: 5px; margin-top: 30px; }
			a { color: #3498db; }
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Privacy Policy</h1>
			<div class="date">Last updated: August 10, 2026</div>

			<p>Welcome to Quitter ("we", "our", or "us"). This Privacy Policy explains how we collect, use, and protect your information when you use our app.</p>
			<p>By using Quitter, you agree to the terms of this Privacy Policy.</p>

			<h2>1. Information We Collect</h2>

			<h3>a. Personal Information (via sign-in)</h3>
			<p>When you sign in, we receive the following from your account provider:</p>
			<ul>
				<li>Your first name and last name</li>
				<li>Your email address</li>
				<li>Your username and profile picture</li>
			</ul>

			<h3>b. Recovery Data</h3>
			<p>The app stores the data you enter to track your recovery:</p>
			<ul>
				<li>The habits you choose to track and their quit dates</li>
				<li>Journal entries, moods and craving levels you record</li>
				<li>Notification preferences and device tokens for push delivery</li>
			</ul>
			<p><strong>We do not collect or access your photos, contacts, camera, microphone, or location.</strong></p>

			<h2>2. How We Use Your Information</h2>
			<ul>
				<li>Help you sign in and manage your account</li>
				<li>Compute your day counts, milestones and badges</li>
				<li>Send you the milestone notifications you opted into</li>
				<li>Maintain the security and reliability of our services</li>
			</ul>

			<h2>3. Sharing Your Information</h2>
			<p>Your recovery data is private to you. We only share data with:</p>
			<ul>
				<li>Authentication providers, to help you log in</li>
				<li>Database and push delivery services used to run the app</li>
			</ul>
			<p>We do not sell your personal data to anyone, and we never share what you track or write.</p>

			<h2>4. Data Storage and Security</h2>
			<p>Your data is stored locally on your device and on our secure database servers. We use encryption and secure services to help protect your information from unauthorized access.</p>
			<p>We keep your data until you delete your account. Deleting your account removes your trackers, journal and notifications.</p>

			<h2>5. Your Rights</h2>
			<ul>
				<li>Request access to the information we have about you</li>
				<li>Delete your account and all related data from inside the app</li>
			</ul>
			<p>To make any requests, contact us at: <a href="mailto:support@quitter.app">support@quitter.app</a></p>

			<h2>6. Children's Privacy</h2>
			<p>Quitter is not directed to children under 13. We do not knowingly collect information from children.</p>

			<h2>7. Changes to This Policy</h2>
			<p>We may update this Privacy Policy from time to time. If we make major changes, we'll let you know by updating the date at the top of this page.</p>

			<h2>8. Contact Us</h2>
			<div class="contact">
				<p>If you have any questions or concerns about this Privacy Policy, contact us at:<br>
				<strong><a href="mailto:support@quitter.app">support@quitter.app</a></strong></p>
			</div>
		</div>
	</body>
	</html>
	`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	tmpl, err := template.New("privacy").Parse(privacyHtml)
	if err != nil {
		http.Error(w, "Could not load privacy policy", http.StatusInternalServerError)
		return
	}

	tmpl.Execute(w, nil)
}

func (h *DocHandler) ServeTermsOfServices(w http.ResponseWriter, r *http.Request) {
	const termsHtml = `
	<!DOCTYPE html>
	<html lang="en">
	<head>
		<meta charset="UTF-8">
		<meta name="viewport" content="width=device-width, initial-scale=1.0">
		<title>Terms of Service - Quitter</title>
		<style>
			body {
				font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif;
				line-height: 1.6;
				color: #333;
				max-width: 800px;
				margin: 0 auto;
				padding: 20px;
				background-color: #f9f9f9;
			}
			.container {
				background-color: #fff;
				padding: 40px;
				border-radius: 8px;
				box-shadow: 0 2px 4px rgba(0,0,0,0.1);
			}
			h1 { color: #2c3e50; border-bottom: 2px solid #eee; padding-bottom: 10px; }
			h2 { color: #34495e; margin-top: 30px; }
			ul { margin-bottom: 20px; }
			li { margin-bottom: 8px; }
			.date { color: #7f8c8d; font-style: italic; margin-bottom: 20px; }
			.contact { background-color: #e8f4f8; padding: 15px; border-radius: 5px; margin-top: 30px; }
			a { color: #3498db; }
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Terms of Service</h1>
			<div class="date">Last updated: August 10, 2026</div>

			<p>Welcome to Quitter ("we", "our", or "us"). By using our app, you agree to these Terms of Service. Please read them carefully.</p>

			<h2>1. Not Medical Advice</h2>
			<p>Quitter helps you count days and celebrate progress. It is not a medical device and does not provide medical advice, diagnosis or treatment. If you are struggling with addiction, please talk to a qualified professional. In an emergency, contact your local emergency services.</p>

			<h2>2. Eligibility</h2>
			<p>You must be 13 years or older to use Quitter. By using the app, you represent that you meet this age requirement.</p>

			<h2>3. Accounts</h2>
			<p>To use Quitter, you need to sign in with a supported account provider.</p>
			<ul>
				<li>You are responsible for maintaining the security of your account.</li>
				<li>Your trackers and journal are private to your account.</li>
			</ul>
			<p>We may suspend or terminate accounts that violate these Terms.</p>

			<h2>4. Content and Intellectual Property</h2>
			<ul>
				<li>Quitter and its content (including designs, logos, and milestone artwork) are protected by copyright and belong to us.</li>
				<li>What you write in your journal belongs to you.</li>
			</ul>

			<h2>5. Disclaimer and Limitation of Liability</h2>
			<ul>
				<li>Quitter is provided "as-is". Errors, downtime, or data losses may occur.</li>
				<li>You agree to use the app at your own risk.</li>
				<li>We are not responsible for decisions you make based on day counts or milestones shown in the app.</li>
			</ul>

			<h2>6. Modifications</h2>
			<p>We may update or change these Terms of Service at any time. Major changes will be indicated by updating the date at the top. Continued use of the app after changes means you accept the new Terms.</p>

			<h2>7. Contact Us</h2>
			<div class="contact">
				<p>If you have questions about these Terms, contact us at:<br>
				<strong><a href="mailto:support@quitter.app">support@quitter.app</a></strong></p>
			</div>
		</div>
	</body>
	</html>
	`

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	tmpl, err := template.New("terms").Parse(termsHtml)
	if err != nil {
		http.Error(w, "Could not load terms of service", http.StatusInternalServerError)
		return
	}

	tmpl.Execute(w, nil)
}

// GetAppMinVersion tells old clients to update. Version codes come from the
// environment so a forced update doesn't need a deploy.
func (h *DocHandler) GetAppMinVersion(w http.ResponseWriter, r *http.Request) {
	appAndroidMinVersion := os.Getenv("ANDROID_MIN_VERSION")
	if appAndroidMinVersion == "" {
		appAndroidMinVersion = "1"
	}

	appIOSMinVersion := os.Getenv("IOS_MIN_VERSION")
	if appIOSMinVersion == "" {
		appIOSMinVersion = "1"
	}

	type MinVersion struct {
		MinAndroidVersion string `json:"min_android_version_code"`
		MinIOSVersion     string `json:"min_ios_version_code"`
		UpdateMessage     string `json:"update_message"`
	}

	minVers := &MinVersion{
		MinAndroidVersion: appAndroidMinVersion,
		MinIOSVersion:     appIOSMinVersion,
		UpdateMessage:     "An important update is available! Please update to continue using the app.",
	}

	respondWithJSON(w, http.StatusOK, minVers)
}
