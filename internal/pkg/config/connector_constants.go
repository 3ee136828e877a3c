package config

// AzureCloudProvider stores media in Azure Blob Storage
const AzureCloudProvider = "azure"

// LocalStorageProvider stores media on the local filesystem
const LocalStorageProvider = "local"
